package chess

import "slices"

// Game is the turn-based state machine over a Board. It is not safe for
// concurrent use; callers serialize access per game.
type Game struct {
	turn          TeamColor
	board         *Board
	previousBoard *Board
	gameOver      bool
}

// NewGame starts from the standard position with white to move.
func NewGame() *Game {
	b := NewBoard()
	b.ResetBoard()
	return &Game{turn: White, board: b}
}

// RestoreGame rebuilds a game from stored state. previous is the board as it
// stood before the last move and may be nil.
func RestoreGame(turn TeamColor, board, previous *Board, gameOver bool) *Game {
	if board == nil {
		board = NewBoard()
	}
	return &Game{turn: turn, board: board, previousBoard: previous, gameOver: gameOver}
}

func (g *Game) TeamTurn() TeamColor {
	return g.turn
}

// SetTeamTurn overrides whose turn it is. Callers that flip it temporarily
// must restore it.
func (g *Game) SetTeamTurn(c TeamColor) {
	g.turn = c
}

func (g *Game) Board() *Board {
	return g.board
}

// SetBoard replaces the live board. The move history is unknown afterwards,
// so no en passant capture is offered until the next move.
func (g *Game) SetBoard(b *Board) {
	g.board = b
	g.previousBoard = nil
}

func (g *Game) PreviousBoard() *Board {
	return g.previousBoard
}

func (g *Game) IsGameOver() bool {
	return g.gameOver
}

// SetGameOver is how resignation ends a game.
func (g *Game) SetGameOver(over bool) {
	g.gameOver = over
}

// ValidMoves returns the legal moves of the piece on pos, whoever's turn it
// is. An empty square yields nil.
func (g *Game) ValidMoves(pos Position) []Move {
	piece := g.board.GetPiece(pos)
	if piece == nil {
		return nil
	}
	moves := []Move{}
	for _, m := range piece.PieceMoves(g.board, pos) {
		if !g.leavesInCheck(m, piece.Color) {
			moves = append(moves, m)
		}
	}
	switch piece.Type {
	case King:
		for _, m := range g.castlingMoves(piece.Color) {
			if m.Start == pos {
				moves = append(moves, m)
			}
		}
	case Pawn:
		for _, m := range g.enPassantMoves(piece.Color) {
			if m.Start == pos && !g.leavesInCheck(m, piece.Color) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// AllValidMoves collects ValidMoves for every piece of color.
func (g *Game) AllValidMoves(color TeamColor) []Move {
	var moves []Move
	for _, pos := range g.squaresOf(color) {
		moves = append(moves, g.ValidMoves(pos)...)
	}
	return moves
}

func (g *Game) squaresOf(color TeamColor) []Position {
	var out []Position
	g.board.Pieces(func(pos Position, p *Piece) {
		if p.Color == color {
			out = append(out, pos)
		}
	})
	return out
}

func (g *Game) hasLegalMove(color TeamColor) bool {
	for _, pos := range g.squaresOf(color) {
		if len(g.ValidMoves(pos)) > 0 {
			return true
		}
	}
	return false
}

// leavesInCheck plays m on a scratch copy of the board.
func (g *Game) leavesInCheck(m Move, color TeamColor) bool {
	scratch := g.board.Copy()
	scratch.ApplyMove(m)
	return inCheck(scratch, color)
}

func (g *Game) IsInCheck(color TeamColor) bool {
	return inCheck(g.board, color)
}

// IsInCheckmate is true when color is in check and has no legal move.
func (g *Game) IsInCheckmate(color TeamColor) bool {
	return g.IsInCheck(color) && !g.hasLegalMove(color)
}

// IsInStalemate is true when color is not in check and has no legal move.
// A true result also ends the game.
func (g *Game) IsInStalemate(color TeamColor) bool {
	if g.IsInCheck(color) || g.hasLegalMove(color) {
		return false
	}
	g.gameOver = true
	return true
}

// MakeMove validates and plays move for the side to move, then passes the
// turn. On error nothing changes. If the side now to move has no legal move
// the game is over.
func (g *Game) MakeMove(move Move) error {
	if g.gameOver {
		return invalidMove(move, ReasonGameOver)
	}
	if !move.Start.InBounds() || !move.End.InBounds() {
		return invalidMove(move, ReasonOutOfBounds)
	}
	piece := g.board.GetPiece(move.Start)
	if piece == nil {
		return invalidMove(move, ReasonNoPiece)
	}
	if !slices.Contains(g.candidateMoves(piece, move.Start), move) {
		return invalidMove(move, ReasonIllegal)
	}
	if g.leavesInCheck(move, piece.Color) {
		return invalidMove(move, ReasonSelfCheck)
	}
	if piece.Color != g.turn {
		return invalidMove(move, ReasonNotYourPiece)
	}

	before := g.board.Copy()
	g.board.ApplyMove(move)
	if moved := g.board.GetPiece(move.End); moved != nil {
		moved.HasMoved = true
	}
	g.previousBoard = before
	g.turn = g.turn.Opponent()

	if !g.hasLegalMove(g.turn) {
		g.gameOver = true
	}
	return nil
}

// candidateMoves is the pseudo-legal set plus the special moves available to
// the piece on from.
func (g *Game) candidateMoves(piece *Piece, from Position) []Move {
	moves := piece.PieceMoves(g.board, from)
	switch piece.Type {
	case King:
		moves = append(moves, g.castlingMoves(piece.Color)...)
	case Pawn:
		moves = append(moves, g.enPassantMoves(piece.Color)...)
	}
	return moves
}

// castlingMoves returns the two-square king moves color may make right now.
// The king may not be in check, and may not pass through or land on an
// attacked square.
func (g *Game) castlingMoves(color TeamColor) []Move {
	row := color.homeRow()
	kingPos := Position{Row: row, Column: 5}
	king := g.board.GetPiece(kingPos)
	if king == nil || king.Type != King || king.Color != color || king.HasMoved {
		return nil
	}
	if inCheck(g.board, color) {
		return nil
	}

	var moves []Move
	for _, side := range []struct{ rookCol, dir int }{{1, -1}, {8, 1}} {
		rook := g.board.GetPiece(Position{Row: row, Column: side.rookCol})
		if rook == nil || rook.Type != Rook || rook.Color != color || rook.HasMoved {
			continue
		}
		if !g.emptyBetween(row, kingPos.Column, side.rookCol) {
			continue
		}
		safe := true
		for step := 1; step <= 2; step++ {
			if g.leavesInCheck(Move{Start: kingPos, End: kingPos.offset(0, step*side.dir)}, color) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Move{Start: kingPos, End: kingPos.offset(0, 2*side.dir)})
		}
	}
	return moves
}

func (g *Game) emptyBetween(row, fromCol, toCol int) bool {
	lo, hi := min(fromCol, toCol), max(fromCol, toCol)
	for col := lo + 1; col < hi; col++ {
		if g.board.GetPiece(Position{Row: row, Column: col}) != nil {
			return false
		}
	}
	return true
}

// enPassantMoves finds captures of an enemy pawn that double-stepped on the
// last move, by comparing the board with the one before that move.
func (g *Game) enPassantMoves(color TeamColor) []Move {
	if g.previousBoard == nil {
		return nil
	}
	enemy := color.Opponent()
	row := enemy.pawnRow() + 2*enemy.forward()
	enemyStart := enemy.pawnRow()

	var moves []Move
	for col := 1; col <= 8; col++ {
		from := Position{Row: row, Column: col}
		pawn := g.board.GetPiece(from)
		if pawn == nil || pawn.Type != Pawn || pawn.Color != color {
			continue
		}
		for _, side := range []int{-1, 1} {
			beside := from.offset(0, side)
			start := Position{Row: enemyStart, Column: beside.Column}
			if !beside.InBounds() {
				continue
			}
			victim := g.board.GetPiece(beside)
			if victim == nil || victim.Type != Pawn || victim.Color != enemy {
				continue
			}
			wasThere := g.previousBoard.GetPiece(start)
			if wasThere == nil || wasThere.Type != Pawn || wasThere.Color != enemy {
				continue
			}
			if g.previousBoard.GetPiece(beside) != nil || g.board.GetPiece(start) != nil {
				continue
			}
			to := from.offset(color.forward(), side)
			if g.board.GetPiece(to) == nil {
				moves = append(moves, Move{Start: from, End: to})
			}
		}
	}
	return moves
}
