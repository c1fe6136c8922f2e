package ws

import (
	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
)

// CommandType is what a client asks of a game over its socket.
type CommandType string

const (
	CommandConnect  CommandType = "CONNECT"
	CommandMakeMove CommandType = "MAKE_MOVE"
	CommandResign   CommandType = "RESIGN"
	CommandLeave    CommandType = "LEAVE"
)

type Command struct {
	CommandType CommandType `json:"commandType"`
	AuthToken   string      `json:"authToken"`
	GameID      string      `json:"gameID"`
	Move        *chess.Move `json:"move,omitempty"`
}

type ServerMessageType string

const (
	MessageLoadGame     ServerMessageType = "LOAD_GAME"
	MessageNotification ServerMessageType = "NOTIFICATION"
	MessageError        ServerMessageType = "ERROR"
	MessageMatchFound   ServerMessageType = "MATCH_FOUND"
)

type ServerMessage struct {
	Type         ServerMessageType      `json:"serverMessageType"`
	Game         *model.GameData        `json:"game,omitempty"`
	Message      string                 `json:"message,omitempty"`
	ErrorMessage string                 `json:"errorMessage,omitempty"`
	Match        *model.MatchFoundEvent `json:"match,omitempty"`
}

func LoadGame(game model.GameData) ServerMessage {
	return ServerMessage{Type: MessageLoadGame, Game: &game}
}

func Notification(msg string) ServerMessage {
	return ServerMessage{Type: MessageNotification, Message: msg}
}

func Error(msg string) ServerMessage {
	return ServerMessage{Type: MessageError, ErrorMessage: msg}
}

func MatchFound(event model.MatchFoundEvent) ServerMessage {
	return ServerMessage{Type: MessageMatchFound, Match: &event}
}
