package chess

// inCheck reports whether color's king is attacked on b. It casts rays out
// from the king instead of generating enemy moves, so the cost does not grow
// with the number of pieces. A board without that king is never in check.
func inCheck(b *Board, color TeamColor) bool {
	king, ok := b.findKing(color)
	if !ok {
		return false
	}
	return attackedByKing(b, king, color) ||
		attackedDiagonally(b, king, color) ||
		attackedOrthogonally(b, king, color) ||
		attackedByKnight(b, king, color)
}

func isEnemy(p *Piece, color TeamColor, types ...PieceType) bool {
	if p == nil || p.Color == color {
		return false
	}
	for _, t := range types {
		if p.Type == t {
			return true
		}
	}
	return false
}

func attackedByKing(b *Board, pos Position, color TeamColor) bool {
	for _, dir := range kingDirs {
		if isEnemy(b.GetPiece(pos.offset(dir.Row, dir.Column)), color, King) {
			return true
		}
	}
	return false
}

// firstOccupied walks from pos along dir and returns the first piece met.
func firstOccupied(b *Board, pos Position, dir Position) (*Piece, Position) {
	target := pos.offset(dir.Row, dir.Column)
	for target.InBounds() {
		if p := b.GetPiece(target); p != nil {
			return p, target
		}
		target = target.offset(dir.Row, dir.Column)
	}
	return nil, target
}

func attackedDiagonally(b *Board, pos Position, color TeamColor) bool {
	for _, dir := range bishopDirs {
		p, at := firstOccupied(b, pos, dir)
		if isEnemy(p, color, Queen, Bishop) {
			return true
		}
		// an enemy pawn captures toward us, so it stands one row ahead of the king
		if isEnemy(p, color, Pawn) && at.Row == pos.Row+color.forward() && abs(at.Column-pos.Column) == 1 {
			return true
		}
	}
	return false
}

func attackedOrthogonally(b *Board, pos Position, color TeamColor) bool {
	for _, dir := range rookDirs {
		if p, _ := firstOccupied(b, pos, dir); isEnemy(p, color, Rook, Queen) {
			return true
		}
	}
	return false
}

func attackedByKnight(b *Board, pos Position, color TeamColor) bool {
	for _, dir := range knightDirs {
		if isEnemy(b.GetPiece(pos.offset(dir.Row, dir.Column)), color, Knight) {
			return true
		}
	}
	return false
}
