package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/chess-server/internal/chess"
)

const squareSize = 64

var glyphs = map[chess.PieceType][2]string{
	chess.King:   {"♔", "♚"},
	chess.Queen:  {"♕", "♛"},
	chess.Rook:   {"♖", "♜"},
	chess.Bishop: {"♗", "♝"},
	chess.Knight: {"♘", "♞"},
	chess.Pawn:   {"♙", "♟"},
}

// SVG writes b as an SVG image with a one-square margin for coordinates.
func SVG(w io.Writer, b *chess.Board, perspective chess.TeamColor, highlight []chess.Position) {
	marked := make(map[chess.Position]bool, len(highlight))
	for _, p := range highlight {
		marked[p] = true
	}

	size := squareSize * 9
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:"+borderColor)

	rows, cols := order(perspective)
	half := squareSize / 2
	labelStyle := "fill:#d3d3d3;font-family:sans-serif;font-size:20px;text-anchor:middle"
	for i, col := range cols {
		x := half + i*squareSize + half
		canvas.Text(x, half/2+8, string(rune('a'+col-1)), labelStyle)
		canvas.Text(x, size-half/2+8, string(rune('a'+col-1)), labelStyle)
	}
	for i, row := range rows {
		y := half + i*squareSize + half
		canvas.Text(half/2, y+8, fmt.Sprint(row), labelStyle)
		canvas.Text(size-half/2, y+8, fmt.Sprint(row), labelStyle)
	}

	for i, row := range rows {
		for j, col := range cols {
			pos := chess.NewPosition(row, col)
			x, y := half+j*squareSize, half+i*squareSize
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+squareColor(pos, marked[pos]))

			p := b.GetPiece(pos)
			if p == nil {
				continue
			}
			glyph := glyphs[p.Type][0]
			if p.Color == chess.Black {
				glyph = glyphs[p.Type][1]
			}
			canvas.Text(x+half, y+half+16, glyph, "fill:#000000;font-size:48px;text-anchor:middle")
		}
	}
	canvas.End()
}

func squareColor(pos chess.Position, marked bool) string {
	light := isLight(pos)
	switch {
	case marked && light:
		return lightHighlightColor
	case marked:
		return darkHighlightColor
	case light:
		return lightColor
	}
	return darkColor
}
