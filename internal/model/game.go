package model

import (
	"encoding/json"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/codec"
)

// GameData is a hosted game: its seats and the engine state.
type GameData struct {
	GameID        string
	GameName      string
	WhiteUsername string
	BlackUsername string
	Game          *chess.Game
}

type gameDataJSON struct {
	GameID        string          `json:"gameID"`
	GameName      string          `json:"gameName"`
	WhiteUsername string          `json:"whiteUsername"`
	BlackUsername string          `json:"blackUsername"`
	Game          codec.GameState `json:"game"`
}

func NewGameData(id, name string) GameData {
	return GameData{GameID: id, GameName: name, Game: chess.NewGame()}
}

// PlayerFor reports the seat username holds, or an observer.
func (g *GameData) PlayerFor(username string) Player {
	switch {
	case username == "":
	case username == g.WhiteUsername:
		return Player{Username: username, Color: chess.White}
	case username == g.BlackUsername:
		return Player{Username: username, Color: chess.Black}
	}
	return Player{Username: username}
}

func (g *GameData) Seat(color chess.TeamColor) string {
	if color == chess.White {
		return g.WhiteUsername
	}
	return g.BlackUsername
}

func (g *GameData) SetSeat(color chess.TeamColor, username string) {
	if color == chess.White {
		g.WhiteUsername = username
	} else {
		g.BlackUsername = username
	}
}

func (g *GameData) Summary() GameSummary {
	return GameSummary{
		GameID:        g.GameID,
		GameName:      g.GameName,
		WhiteUsername: g.WhiteUsername,
		BlackUsername: g.BlackUsername,
	}
}

func (g GameData) MarshalJSON() ([]byte, error) {
	game := g.Game
	if game == nil {
		game = chess.NewGame()
	}
	return json.Marshal(gameDataJSON{
		GameID:        g.GameID,
		GameName:      g.GameName,
		WhiteUsername: g.WhiteUsername,
		BlackUsername: g.BlackUsername,
		Game:          codec.EncodeGame(game),
	})
}

func (g *GameData) UnmarshalJSON(data []byte) error {
	var raw gameDataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	game, err := codec.DecodeGame(raw.Game)
	if err != nil {
		return err
	}
	*g = GameData{
		GameID:        raw.GameID,
		GameName:      raw.GameName,
		WhiteUsername: raw.WhiteUsername,
		BlackUsername: raw.BlackUsername,
		Game:          game,
	}
	return nil
}

type GameSummary struct {
	GameID        string `json:"gameID"`
	GameName      string `json:"gameName"`
	WhiteUsername string `json:"whiteUsername"`
	BlackUsername string `json:"blackUsername"`
}
