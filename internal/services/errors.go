package services

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid operation status")

	// ErrPersonTypeMismatch is returned when an operation's detail block
	// does not match its person type.
	ErrPersonTypeMismatch = errors.New("details do not match person type")
)
