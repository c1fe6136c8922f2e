package service

import "errors"

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// reasonError reads as reason but matches kind under errors.Is.
type reasonError struct {
	kind   error
	reason string
}

func (e *reasonError) Error() string { return e.reason }
func (e *reasonError) Unwrap() error { return e.kind }

func badRequest(reason string) error { return &reasonError{kind: ErrBadRequest, reason: reason} }
func forbidden(reason string) error  { return &reasonError{kind: ErrForbidden, reason: reason} }
