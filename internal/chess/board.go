package chess

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Board is an 8x8 grid of optional pieces. It applies whatever move it is
// given, special cases included; legality is Game's job.
type Board struct {
	squares [8][8]*Piece
}

// NewBoard returns an empty board. Call ResetBoard for the starting position.
func NewBoard() *Board {
	return &Board{}
}

// Copy returns a deep copy; pieces are cloned, so mutating either board never
// affects the other.
func (b *Board) Copy() *Board {
	c := &Board{}
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			c.squares[r][col] = b.squares[r][col].clone()
		}
	}
	return c
}

func (b *Board) GetPiece(pos Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.squares[pos.Row-1][pos.Column-1]
}

// AddPiece places piece at pos, replacing any occupant. Out-of-bounds
// positions are ignored.
func (b *Board) AddPiece(pos Position, piece *Piece) {
	if !pos.InBounds() {
		return
	}
	b.squares[pos.Row-1][pos.Column-1] = piece
}

func (b *Board) RemovePiece(pos Position) {
	b.AddPiece(pos, nil)
}

// ApplyMove performs move, including the rook hop of a castle, the pawn
// removal of an en passant capture and promotion. An empty start square is a
// no-op.
func (b *Board) ApplyMove(move Move) {
	piece := b.GetPiece(move.Start)
	if piece == nil || !move.End.InBounds() {
		return
	}

	switch {
	case piece.Type == King && abs(move.End.Column-move.Start.Column) == 2:
		b.castleRook(move)
		b.AddPiece(move.End, piece)
	case piece.Type == Pawn && move.End.Column != move.Start.Column && b.GetPiece(move.End) == nil:
		// en passant: the captured pawn sits beside the start square
		b.RemovePiece(Position{Row: move.Start.Row, Column: move.End.Column})
		b.AddPiece(move.End, piece)
	case piece.Type == Pawn && move.Promotion != "" && move.End.Row == piece.Color.promotionRow():
		b.AddPiece(move.End, &Piece{Color: piece.Color, Type: move.Promotion, HasMoved: true})
	default:
		b.AddPiece(move.End, piece)
	}
	b.RemovePiece(move.Start)
}

func (b *Board) castleRook(move Move) {
	row := move.Start.Row
	from, to := Position{Row: row, Column: 8}, Position{Row: row, Column: 6}
	if move.End.Column < move.Start.Column {
		from, to = Position{Row: row, Column: 1}, Position{Row: row, Column: 4}
	}
	rook := b.GetPiece(from)
	if rook == nil || rook.Type != Rook || rook.HasMoved {
		return
	}
	b.RemovePiece(from)
	rook.HasMoved = true
	b.AddPiece(to, rook)
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// ResetBoard clears the board and sets up the standard 32 pieces, all unmoved.
func (b *Board) ResetBoard() {
	b.squares = [8][8]*Piece{}
	for col := 1; col <= 8; col++ {
		b.AddPiece(Position{Row: 1, Column: col}, NewPiece(White, backRank[col-1]))
		b.AddPiece(Position{Row: 2, Column: col}, NewPiece(White, Pawn))
		b.AddPiece(Position{Row: 7, Column: col}, NewPiece(Black, Pawn))
		b.AddPiece(Position{Row: 8, Column: col}, NewPiece(Black, backRank[col-1]))
	}
}

// Equal compares color and type on every square. HasMoved is ignored.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			if !b.squares[r][col].Same(other.squares[r][col]) {
				return false
			}
		}
	}
	return true
}

// Hash is consistent with Equal.
func (b *Board) Hash() uint64 {
	var buf [64]byte
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			buf[r*8+col] = Symbol(b.squares[r][col])
		}
	}
	return xxhash.Sum64(buf[:])
}

// Pieces calls fn for every occupied square, row 1 to 8, column 1 to 8.
func (b *Board) Pieces(fn func(pos Position, piece *Piece)) {
	for r := 1; r <= 8; r++ {
		for col := 1; col <= 8; col++ {
			if p := b.squares[r-1][col-1]; p != nil {
				fn(Position{Row: r, Column: col}, p)
			}
		}
	}
}

func (b *Board) findKing(color TeamColor) (Position, bool) {
	for r := 1; r <= 8; r++ {
		for col := 1; col <= 8; col++ {
			if p := b.squares[r-1][col-1]; p != nil && p.Type == King && p.Color == color {
				return Position{Row: r, Column: col}, true
			}
		}
	}
	return Position{}, false
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 8; r >= 1; r-- {
		for col := 1; col <= 8; col++ {
			sb.WriteByte(Symbol(b.GetPiece(Position{Row: r, Column: col})))
		}
		if r > 1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads the format produced by String: eight lines, rank 8 first,
// one symbol per square. Pieces come back unmoved.
func ParseBoard(s string) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != 8 {
		return nil, fmt.Errorf("board needs 8 ranks, got %d", len(lines))
	}
	b := NewBoard()
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != 8 {
			return nil, fmt.Errorf("rank %d needs 8 squares, got %q", 8-i, line)
		}
		for col := 1; col <= 8; col++ {
			ch := line[col-1]
			if ch == '.' {
				continue
			}
			t, err := ParsePieceType(string(ch))
			if err != nil {
				return nil, fmt.Errorf("rank %d: %w", 8-i, err)
			}
			color := White
			if ch >= 'a' && ch <= 'z' {
				color = Black
			}
			b.AddPiece(Position{Row: 8 - i, Column: col}, NewPiece(color, t))
		}
	}
	return b, nil
}

// Symbol is the one-letter form of p: upper case for white, lower case for
// black, '.' for an empty square.
func Symbol(p *Piece) byte {
	if p == nil {
		return '.'
	}
	letter := p.Type.Notation()
	if p.Type == Pawn {
		letter = "P"
	}
	if letter == "" {
		return '?'
	}
	if p.Color == Black {
		letter = strings.ToLower(letter)
	}
	return letter[0]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
