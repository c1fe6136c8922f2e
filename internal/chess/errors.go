package chess

import "errors"

// ErrInvalidMove matches every *InvalidMoveError through errors.Is.
var ErrInvalidMove = errors.New("invalid move")

const (
	ReasonGameOver     = "game is over"
	ReasonNoPiece      = "there's no piece there"
	ReasonIllegal      = "invalid move"
	ReasonSelfCheck    = "that move puts you in check"
	ReasonNotYourPiece = "that's not your piece"
	ReasonOutOfBounds  = "position out of bounds"
)

// InvalidMoveError is returned by Game.MakeMove. The game is left untouched.
type InvalidMoveError struct {
	Move   Move
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return e.Reason
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

func invalidMove(m Move, reason string) error {
	return &InvalidMoveError{Move: m, Reason: reason}
}
