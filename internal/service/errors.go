package service

import (
	"errors"

	"inotebook-server/internal/domain"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotAllowed   = errors.New("note does not belong to user")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError carries every rejected field of a request.
type ValidationError struct {
	Errors []domain.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
