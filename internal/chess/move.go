package chess

import (
	"fmt"
	"strings"
)

// Move is a start square, an end square and an optional promotion type. The
// zero PieceType means no promotion. Moves compare with ==.
type Move struct {
	Start     Position  `json:"startPosition"`
	End       Position  `json:"endPosition"`
	Promotion PieceType `json:"promotionPiece,omitempty"`
}

func NewMove(start, end Position, promotion PieceType) Move {
	return Move{Start: start, End: end, Promotion: promotion}
}

// ParseMove reads coordinate notation: "e2e4", "e7e8q" or "e7e8=Q".
func ParseMove(s string) (Move, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "=", "")
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("bad move %q", s)
	}
	start, err := ParsePosition(s[0:2])
	if err != nil {
		return Move{}, err
	}
	end, err := ParsePosition(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{Start: start, End: end}
	if len(s) == 5 {
		if m.Promotion, err = ParsePieceType(s[4:]); err != nil {
			return Move{}, err
		}
	}
	return m, nil
}

func (m Move) String() string {
	s := m.Start.String() + m.End.String()
	if m.Promotion != "" {
		s += "=" + m.Promotion.Notation()
	}
	return s
}
