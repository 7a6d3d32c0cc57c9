package repositories

import "errors"

var (
	// ErrNotFound is returned when a record is absent or not owned by the
	// caller; the two cases are intentionally indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user's email collides with the
	// unique index.
	ErrDuplicateEmail = errors.New("email already registered")
)
