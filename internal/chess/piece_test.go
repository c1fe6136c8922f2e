package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ends(moves []Move) []Position {
	out := make([]Position, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.End)
	}
	return out
}

func TestOpeningPieceMoves(t *testing.T) {
	b := NewBoard()
	b.ResetBoard()

	for col := 1; col <= 8; col++ {
		for _, row := range []int{2, 7} {
			pos := Position{Row: row, Column: col}
			assert.Len(t, b.GetPiece(pos).PieceMoves(b, pos), 2, "pawn on %s", pos)
		}
	}
	for _, s := range []string{"b1", "g1", "b8", "g8"} {
		pos := sq(t, s)
		assert.Len(t, b.GetPiece(pos).PieceMoves(b, pos), 2, "knight on %s", s)
	}
	for _, s := range []string{"a1", "c1", "d1", "e1", "h8"} {
		pos := sq(t, s)
		assert.Empty(t, b.GetPiece(pos).PieceMoves(b, pos), "boxed in on %s", s)
	}
}

func TestSlidingStopsAtPieces(t *testing.T) {
	b := mustBoard(t, `........
........
...p....
........
...R..P.
........
........
........`)
	rook := b.GetPiece(sq(t, "d4"))
	got := ends(rook.PieceMoves(b, sq(t, "d4")))

	assert.ElementsMatch(t, []Position{
		sq(t, "d5"), sq(t, "d6"), // capture on d6 ends the ray
		sq(t, "e4"), sq(t, "f4"), // own pawn on g4 blocks
		sq(t, "c4"), sq(t, "b4"), sq(t, "a4"),
		sq(t, "d3"), sq(t, "d2"), sq(t, "d1"),
	}, got)
}

func TestQueenIsRookPlusBishop(t *testing.T) {
	b := NewBoard()
	center := sq(t, "d4")
	b.AddPiece(center, NewPiece(White, Queen))

	assert.Len(t, b.GetPiece(center).PieceMoves(b, center), 27)

	b.AddPiece(center, NewPiece(White, Bishop))
	assert.Len(t, b.GetPiece(center).PieceMoves(b, center), 13)
}

func TestKnightAndKingInCorner(t *testing.T) {
	b := NewBoard()
	b.AddPiece(sq(t, "a1"), NewPiece(White, Knight))
	b.AddPiece(sq(t, "h8"), NewPiece(Black, King))

	assert.ElementsMatch(t, []Position{sq(t, "b3"), sq(t, "c2")}, ends(b.GetPiece(sq(t, "a1")).PieceMoves(b, sq(t, "a1"))))
	assert.ElementsMatch(t, []Position{sq(t, "g8"), sq(t, "g7"), sq(t, "h7")}, ends(b.GetPiece(sq(t, "h8")).PieceMoves(b, sq(t, "h8"))))
}

func TestPawnMoves(t *testing.T) {
	b := mustBoard(t, `........
........
........
........
...n....
........
..pP....
..N.....`)

	t.Run("blocked double step", func(t *testing.T) {
		got := ends(b.GetPiece(sq(t, "d2")).PieceMoves(b, sq(t, "d2")))
		assert.ElementsMatch(t, []Position{sq(t, "d3")}, got)
	})
	t.Run("black captures diagonally only", func(t *testing.T) {
		got := b.GetPiece(sq(t, "c2")).PieceMoves(b, sq(t, "c2"))
		// c1 is occupied and neither b1 nor d1 holds a white piece
		assert.Empty(t, got)
	})
}

func TestPawnPromotionExpands(t *testing.T) {
	b := mustBoard(t, `..r.....
.P......
........
........
........
........
........
........`)
	moves := b.GetPiece(sq(t, "b7")).PieceMoves(b, sq(t, "b7"))
	require.Len(t, moves, 8)

	byEnd := map[Position][]PieceType{}
	for _, m := range moves {
		byEnd[m.End] = append(byEnd[m.End], m.Promotion)
	}
	assert.Equal(t, PromotionTypes, byEnd[sq(t, "b8")])
	assert.Equal(t, PromotionTypes, byEnd[sq(t, "c8")])
}

func TestParsePieceType(t *testing.T) {
	for in, want := range map[string]PieceType{"queen": Queen, "N": Knight, " ROOK ": Rook, "p": Pawn} {
		got, err := ParsePieceType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePieceType("dragon")
	assert.Error(t, err)
}

func TestParseTeamColor(t *testing.T) {
	c, err := ParseTeamColor("white")
	require.NoError(t, err)
	assert.Equal(t, White, c)
	assert.Equal(t, Black, c.Opponent())

	_, err = ParseTeamColor("green")
	assert.Error(t, err)
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("e4")
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 4, Column: 5}, p)
	assert.Equal(t, "e4", p.String())

	for _, bad := range []string{"", "i1", "a9", "e44"} {
		_, err := ParsePosition(bad)
		assert.Error(t, err, bad)
	}
}
