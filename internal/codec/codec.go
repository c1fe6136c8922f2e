// Package codec is the JSON form of chess boards and games, used on the wire
// and in storage.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-server/internal/chess"
)

type Square struct {
	Position chess.Position `json:"position"`
	Piece    *chess.Piece   `json:"piece"`
}

// BoardState lists occupied squares only.
type BoardState struct {
	Squares []Square `json:"squares"`
}

type GameState struct {
	TeamTurn      chess.TeamColor `json:"teamTurn"`
	Board         BoardState      `json:"board"`
	PreviousBoard *BoardState     `json:"previousBoard,omitempty"`
	GameOver      bool            `json:"gameOver"`
}

func EncodeBoard(b *chess.Board) BoardState {
	state := BoardState{Squares: []Square{}}
	b.Pieces(func(pos chess.Position, p *chess.Piece) {
		c := *p
		state.Squares = append(state.Squares, Square{Position: pos, Piece: &c})
	})
	return state
}

func DecodeBoard(state BoardState) (*chess.Board, error) {
	b := chess.NewBoard()
	for _, s := range state.Squares {
		if !s.Position.InBounds() {
			return nil, fmt.Errorf("square %v out of bounds", s.Position)
		}
		if s.Piece == nil {
			continue
		}
		if b.GetPiece(s.Position) != nil {
			return nil, fmt.Errorf("square %s listed twice", s.Position)
		}
		if _, err := chess.ParseTeamColor(string(s.Piece.Color)); err != nil {
			return nil, fmt.Errorf("square %s: %w", s.Position, err)
		}
		if _, err := chess.ParsePieceType(string(s.Piece.Type)); err != nil {
			return nil, fmt.Errorf("square %s: %w", s.Position, err)
		}
		p := *s.Piece
		b.AddPiece(s.Position, &p)
	}
	return b, nil
}

func EncodeGame(g *chess.Game) GameState {
	state := GameState{
		TeamTurn: g.TeamTurn(),
		Board:    EncodeBoard(g.Board()),
		GameOver: g.IsGameOver(),
	}
	if prev := g.PreviousBoard(); prev != nil {
		p := EncodeBoard(prev)
		state.PreviousBoard = &p
	}
	return state
}

func DecodeGame(state GameState) (*chess.Game, error) {
	turn, err := chess.ParseTeamColor(string(state.TeamTurn))
	if err != nil {
		return nil, err
	}
	board, err := DecodeBoard(state.Board)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	var previous *chess.Board
	if state.PreviousBoard != nil {
		if previous, err = DecodeBoard(*state.PreviousBoard); err != nil {
			return nil, fmt.Errorf("previous board: %w", err)
		}
	}
	return chess.RestoreGame(turn, board, previous, state.GameOver), nil
}

func Marshal(g *chess.Game) ([]byte, error) {
	return json.Marshal(EncodeGame(g))
}

func Unmarshal(data []byte) (*chess.Game, error) {
	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return DecodeGame(state)
}
