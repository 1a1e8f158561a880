package services

import "errors"

// Closed set of error kinds reported to the transport layer. Handlers match
// these with errors.Is and map them to status codes; services wrap them with
// operation context.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)
