package infrastructure

import "errors"

// Error taxonomy surfaced to the HTTP boundary. Services wrap these with
// context; handlers map them to status codes with errors.Is.
var (
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")

	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrTokenExpired = errors.New("access token has expired")
)
