// Package render draws boards for clients that cannot draw their own.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/benbeisheim/chess-server/internal/chess"
)

const (
	lightColor          = "#f0d9b5"
	darkColor           = "#b58863"
	lightHighlightColor = "#add8e6"
	darkHighlightColor  = "#4682b4"
	borderColor         = "#8b1a1a"
)

type textStyles struct {
	light, dark                   lipgloss.Style
	lightHighlight, darkHighlight lipgloss.Style
	border                        lipgloss.Style
}

func newTextStyles(color bool) textStyles {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	square := func(bg string) lipgloss.Style {
		return r.NewStyle().Background(lipgloss.Color(bg))
	}
	return textStyles{
		light:          square(lightColor),
		dark:           square(darkColor),
		lightHighlight: square(lightHighlightColor),
		darkHighlight:  square(darkHighlightColor),
		border:         square(borderColor).Foreground(lipgloss.Color("#d3d3d3")).Bold(true),
	}
}

// Text draws b as seen by perspective, with the squares in highlight marked.
// Pieces use their letter: upper case for white, lower case for black.
func Text(b *chess.Board, perspective chess.TeamColor, highlight []chess.Position, color bool) string {
	st := newTextStyles(color)
	marked := make(map[chess.Position]bool, len(highlight))
	for _, p := range highlight {
		marked[p] = true
	}

	rows, cols := order(perspective)
	header := st.border.Render(headerLine(cols))

	lines := []string{header}
	for _, row := range rows {
		label := st.border.Render(" " + string(rune('0'+row)) + " ")
		cells := []string{label}
		for _, col := range cols {
			pos := chess.NewPosition(row, col)
			cell, text := st.square(pos, marked[pos]), "   "
			if p := b.GetPiece(pos); p != nil {
				text = " " + string(chess.Symbol(p)) + " "
				cell = cell.Foreground(pieceColor(p.Color)).Bold(true)
			}
			cells = append(cells, cell.Render(text))
		}
		cells = append(cells, label)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	lines = append(lines, header)
	return strings.Join(lines, "\n")
}

func (st textStyles) square(pos chess.Position, marked bool) lipgloss.Style {
	light := isLight(pos)
	switch {
	case marked && light:
		return st.lightHighlight
	case marked:
		return st.darkHighlight
	case light:
		return st.light
	}
	return st.dark
}

func pieceColor(c chess.TeamColor) lipgloss.Color {
	if c == chess.White {
		return lipgloss.Color("#ffffff")
	}
	return lipgloss.Color("#000000")
}

func headerLine(cols []int) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for _, col := range cols {
		sb.WriteString(" " + string(rune('a'+col-1)) + " ")
	}
	sb.WriteString("   ")
	return sb.String()
}

// order lists rows top to bottom and columns left to right.
func order(perspective chess.TeamColor) (rows, cols []int) {
	for i := 1; i <= 8; i++ {
		if perspective == chess.Black {
			rows = append(rows, i)
			cols = append(cols, 9-i)
		} else {
			rows = append(rows, 9-i)
			cols = append(cols, i)
		}
	}
	return rows, cols
}

func isLight(pos chess.Position) bool {
	return (pos.Row+pos.Column)%2 == 1
}

// Destinations lists where the piece on pos may legally go.
func Destinations(g *chess.Game, pos chess.Position) []chess.Position {
	var out []chess.Position
	for _, m := range g.ValidMoves(pos) {
		out = append(out, m.End)
	}
	return out
}
