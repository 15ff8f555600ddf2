package service

import "errors"

// Error taxonomy shared by the services. Controllers map these onto HTTP
// status codes; anything unwrapped falls through as an internal failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)
