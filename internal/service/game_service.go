package service

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/storage"
	"github.com/benbeisheim/chess-server/internal/ws"
)

type GameService struct {
	gameManager *GameManager
	hub         *ws.Hub
	logger      *log.Logger
}

func NewGameService(gameManager *GameManager, hub *ws.Hub, logger *log.Logger) *GameService {
	return &GameService{
		gameManager: gameManager,
		hub:         hub,
		logger:      logger,
	}
}

func (gs *GameService) CreateGame(name string) (string, error) {
	if name == "" {
		return "", ErrBadRequest
	}
	return gs.gameManager.CreateGame(name)
}

func (gs *GameService) ListGames() ([]model.GameSummary, error) {
	games, err := gs.gameManager.ListGames()
	if err != nil {
		return nil, err
	}
	summaries := make([]model.GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, g.Summary())
	}
	return summaries, nil
}

func (gs *GameService) GetGame(gameID string) (model.GameData, error) {
	return gs.gameManager.GetGame(gameID)
}

// JoinGame seats username as color. Rejoining your own seat is allowed.
func (gs *GameService) JoinGame(username, gameID, color string) error {
	teamColor, err := chess.ParseTeamColor(color)
	if err != nil || gameID == "" {
		return ErrBadRequest
	}

	err = gs.gameManager.WithGame(gameID, func(game *model.GameData) error {
		if seated := game.Seat(teamColor); seated != "" && seated != username {
			return storage.ErrAlreadyTaken
		}
		game.SetSeat(teamColor, username)
		return nil
	})
	if isNotFound(err) {
		return ErrBadRequest
	}
	if err == nil {
		gs.logger.Info("player joined", "game", gameID, "user", username, "color", teamColor)
	}
	return err
}

func (gs *GameService) JoinMatchmaking(username string) error {
	return gs.gameManager.JoinMatchmaking(username)
}

func (gs *GameService) LeaveMatchmaking(username string) {
	gs.gameManager.LeaveMatchmaking(username)
}

func (gs *GameService) RegisterMatchmakingChannel(username string, ch chan model.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(username, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(username string, ch chan model.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(username, ch)
}

func (gs *GameService) Clear() error {
	return gs.gameManager.Clear()
}

// Connect attaches conn to the game and announces the newcomer.
func (gs *GameService) Connect(gameID, username string, conn ws.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if isNotFound(err) {
		return badRequest("invalid game ID")
	}
	if err != nil {
		return err
	}

	player := game.PlayerFor(username)
	gs.hub.Register(gameID, username, conn)
	gs.hub.Send(gameID, conn, ws.LoadGame(game))
	gs.hub.Broadcast(gameID, ws.Notification(fmt.Sprintf("%s has joined the game as %s", username, player.Describe())), conn)
	return nil
}

// MakeMove plays move for username and tells every connection about it.
// The broadcasts go out under the game's lock so clients see moves in the
// order they were committed.
func (gs *GameService) MakeMove(gameID, username string, move chess.Move, conn ws.Conn) error {
	var player model.Player
	err := gs.gameManager.WithGameSaved(gameID, func(game *model.GameData) error {
		player = game.PlayerFor(username)
		if player.IsObserver() {
			return forbidden("observers cannot move")
		}
		if !game.Game.IsGameOver() && game.Game.TeamTurn() != player.Color {
			return forbidden("not your turn")
		}
		return game.Game.MakeMove(move)
	}, func(updated model.GameData) {
		gs.logger.Info("move", "game", gameID, "user", username, "move", move)
		gs.hub.Broadcast(gameID, ws.LoadGame(updated), nil)
		gs.hub.Broadcast(gameID, ws.Notification(fmt.Sprintf("%s moved %s to %s", username, move.Start, move.End)), conn)
		if status := statusMessage(updated, player.Color.Opponent()); status != "" {
			gs.hub.Broadcast(gameID, ws.Notification(status), nil)
		}
	})
	if isNotFound(err) {
		return badRequest("invalid game ID")
	}
	return err
}

func statusMessage(game model.GameData, color chess.TeamColor) string {
	name := game.Seat(color)
	switch {
	case game.Game.IsInCheckmate(color):
		return fmt.Sprintf("%s (%s) is in checkmate! %s wins!", name, color, color.Opponent())
	case game.Game.IsInCheck(color):
		return fmt.Sprintf("%s (%s) is in check!", name, color)
	case game.Game.IsGameOver():
		return fmt.Sprintf("%s can't make any moves. Stalemate!", color)
	}
	return ""
}

func (gs *GameService) Resign(gameID, username string) error {
	err := gs.gameManager.WithGameSaved(gameID, func(game *model.GameData) error {
		if game.PlayerFor(username).IsObserver() {
			return forbidden("observers cannot resign")
		}
		if game.Game.IsGameOver() {
			return badRequest("game is over")
		}
		game.Game.SetGameOver(true)
		return nil
	}, func(model.GameData) {
		gs.logger.Info("resigned", "game", gameID, "user", username)
		gs.hub.Broadcast(gameID, ws.Notification(fmt.Sprintf("%s has resigned", username)), nil)
	})
	if isNotFound(err) {
		return badRequest("invalid game ID")
	}
	return err
}

// Leave gives up username's seat, if any, and detaches conn.
func (gs *GameService) Leave(gameID, username string, conn ws.Conn) error {
	err := gs.gameManager.WithGame(gameID, func(game *model.GameData) error {
		if player := game.PlayerFor(username); !player.IsObserver() {
			game.SetSeat(player.Color, "")
		}
		return nil
	})
	if err != nil && !isNotFound(err) {
		return err
	}

	gs.hub.Unregister(gameID, conn)
	gs.hub.Broadcast(gameID, ws.Notification(fmt.Sprintf("%s has left the game", username)), nil)
	return nil
}

// Disconnect detaches conn without touching seats.
func (gs *GameService) Disconnect(gameID string, conn ws.Conn) {
	gs.hub.Unregister(gameID, conn)
}

// SendError reports err to conn alone.
func (gs *GameService) SendError(gameID string, conn ws.Conn, err error) {
	gs.hub.Send(gameID, conn, ws.Error(ErrorMessage(err)))
}

// ErrorMessage is the text shown to a client for err.
func ErrorMessage(err error) string {
	return "Error: " + err.Error()
}
