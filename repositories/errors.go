package repositories

import "errors"

var (
	// ErrNotFound is returned when the referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the users unique email index rejects
	// an insert.
	ErrDuplicateEmail = errors.New("email already registered")
)
