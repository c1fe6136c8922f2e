package chess

import "fmt"

// Position is a square on the board. Row and Column are 1-indexed; row 1 is
// white's back rank and column 1 is the a-file.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewPosition(row, column int) Position {
	return Position{Row: row, Column: column}
}

// ParsePosition reads algebraic notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("bad square %q", s)
	}
	p := Position{Row: int(s[1]-'1') + 1, Column: int(s[0]-'a') + 1}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("bad square %q", s)
	}
	return p, nil
}

func (p Position) InBounds() bool {
	return p.Row >= 1 && p.Row <= 8 && p.Column >= 1 && p.Column <= 8
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Column: p.Column + dCol}
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Column-1, p.Row)
}
