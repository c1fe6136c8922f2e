package model

import "github.com/benbeisheim/chess-server/internal/chess"

// Player is a user attached to one game. Color is empty for observers.
type Player struct {
	Username string
	Color    chess.TeamColor
}

func (p Player) IsObserver() bool {
	return p.Color == ""
}

func (p Player) Describe() string {
	if p.IsObserver() {
		return "an observer"
	}
	return string(p.Color)
}

type MatchFoundEvent struct {
	GameID string          `json:"gameID"`
	Color  chess.TeamColor `json:"color"`
}
