package domain

import "errors"

// Taxonomy sentinels. The HTTP layer maps these to status codes; everything
// outside the taxonomy surfaces as a generic 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
)

// Error carries a taxonomy sentinel plus the stable machine-readable code and
// human message that go on the wire.
type Error struct {
	Err  error
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Code + ": " + e.Msg }
func (e *Error) Unwrap() error { return e.Err }

func E(kind error, code, msg string) *Error {
	return &Error{Err: kind, Code: code, Msg: msg}
}
