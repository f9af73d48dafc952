package services

import "errors"

// Service failures fall into four client-visible categories; handlers map
// them to status codes. Anything unwrapped is a storage failure and is
// reported generically.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("invalid credentials")
)
