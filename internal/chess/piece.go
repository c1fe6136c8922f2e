package chess

import (
	"fmt"
	"strings"
)

type TeamColor string

const (
	White TeamColor = "WHITE"
	Black TeamColor = "BLACK"
)

func ParseTeamColor(s string) (TeamColor, error) {
	switch TeamColor(strings.ToUpper(strings.TrimSpace(s))) {
	case White:
		return White, nil
	case Black:
		return Black, nil
	}
	return "", fmt.Errorf("unknown team color %q", s)
}

func (c TeamColor) Opponent() TeamColor {
	if c == White {
		return Black
	}
	return White
}

// forward is the row direction pawns of this color advance in.
func (c TeamColor) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c TeamColor) homeRow() int {
	if c == White {
		return 1
	}
	return 8
}

func (c TeamColor) pawnRow() int {
	if c == White {
		return 2
	}
	return 7
}

func (c TeamColor) promotionRow() int {
	if c == White {
		return 8
	}
	return 1
}

type PieceType string

const (
	King   PieceType = "KING"
	Queen  PieceType = "QUEEN"
	Rook   PieceType = "ROOK"
	Bishop PieceType = "BISHOP"
	Knight PieceType = "KNIGHT"
	Pawn   PieceType = "PAWN"
)

// PromotionTypes lists what a pawn may become, in the order moves are generated.
var PromotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

func ParsePieceType(s string) (PieceType, error) {
	switch t := PieceType(strings.ToUpper(strings.TrimSpace(s))); t {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return t, nil
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "R":
		return Rook, nil
	case "B":
		return Bishop, nil
	case "N":
		return Knight, nil
	case "P":
		return Pawn, nil
	}
	return "", fmt.Errorf("unknown piece type %q", s)
}

func (t PieceType) Notation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece does not know its square; Board owns placement. HasMoved flips to true
// the first time the piece is moved and is carried over by Board.Copy.
type Piece struct {
	Color    TeamColor `json:"teamColor"`
	Type     PieceType `json:"pieceType"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(color TeamColor, t PieceType) *Piece {
	return &Piece{Color: color, Type: t}
}

// Same reports whether both pieces have the same color and type. Two nil
// pieces are the same.
func (p *Piece) Same(other *Piece) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Color == other.Color && p.Type == other.Type
}

func (p *Piece) clone() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (p *Piece) String() string {
	if p == nil {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

var (
	rookDirs   = []Position{{Row: 1}, {Row: -1}, {Column: 1}, {Column: -1}}
	bishopDirs = []Position{{Row: 1, Column: 1}, {Row: 1, Column: -1}, {Row: -1, Column: 1}, {Row: -1, Column: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{
		{Row: 2, Column: 1}, {Row: 2, Column: -1}, {Row: -2, Column: 1}, {Row: -2, Column: -1},
		{Row: 1, Column: 2}, {Row: 1, Column: -2}, {Row: -1, Column: 2}, {Row: -1, Column: -2},
	}
	kingDirs = queenDirs
)

type moveGenerator func(b *Board, from Position, color TeamColor) []Move

var generators = map[PieceType]moveGenerator{
	King:   func(b *Board, from Position, c TeamColor) []Move { return stepMoves(b, from, c, kingDirs) },
	Queen:  func(b *Board, from Position, c TeamColor) []Move { return slideMoves(b, from, c, queenDirs) },
	Rook:   func(b *Board, from Position, c TeamColor) []Move { return slideMoves(b, from, c, rookDirs) },
	Bishop: func(b *Board, from Position, c TeamColor) []Move { return slideMoves(b, from, c, bishopDirs) },
	Knight: func(b *Board, from Position, c TeamColor) []Move { return stepMoves(b, from, c, knightDirs) },
	Pawn:   pawnMoves,
}

// PieceMoves returns the pseudo-legal moves of p standing on from. It never
// looks at check, castling or en passant; Game layers those on top.
func (p *Piece) PieceMoves(b *Board, from Position) []Move {
	gen, ok := generators[p.Type]
	if !ok || !from.InBounds() {
		return nil
	}
	return gen(b, from, p.Color)
}

func slideMoves(b *Board, from Position, color TeamColor, dirs []Position) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		target := from.offset(dir.Row, dir.Column)
		for target.InBounds() {
			occupant := b.GetPiece(target)
			if occupant == nil {
				moves = append(moves, Move{Start: from, End: target})
			} else if occupant.Color != color {
				moves = append(moves, Move{Start: from, End: target})
				break
			} else {
				break
			}
			target = target.offset(dir.Row, dir.Column)
		}
	}
	return moves
}

func stepMoves(b *Board, from Position, color TeamColor, offsets []Position) []Move {
	moves := []Move{}
	for _, dir := range offsets {
		target := from.offset(dir.Row, dir.Column)
		if !target.InBounds() {
			continue
		}
		if occupant := b.GetPiece(target); occupant == nil || occupant.Color != color {
			moves = append(moves, Move{Start: from, End: target})
		}
	}
	return moves
}

func pawnMoves(b *Board, from Position, color TeamColor) []Move {
	moves := []Move{}
	dir := color.forward()

	one := from.offset(dir, 0)
	if one.InBounds() && b.GetPiece(one) == nil {
		moves = appendPawnMove(moves, from, one, color)
		two := from.offset(2*dir, 0)
		if from.Row == color.pawnRow() && b.GetPiece(two) == nil {
			moves = append(moves, Move{Start: from, End: two})
		}
	}
	for _, side := range []int{-1, 1} {
		target := from.offset(dir, side)
		if !target.InBounds() {
			continue
		}
		if occupant := b.GetPiece(target); occupant != nil && occupant.Color != color {
			moves = appendPawnMove(moves, from, target, color)
		}
	}
	return moves
}

// appendPawnMove expands a move onto the last rank into one move per promotion type.
func appendPawnMove(moves []Move, from, to Position, color TeamColor) []Move {
	if to.Row != color.promotionRow() {
		return append(moves, Move{Start: from, End: to})
	}
	for _, t := range PromotionTypes {
		moves = append(moves, Move{Start: from, End: to, Promotion: t})
	}
	return moves
}
