package services

import "errors"

// Error kinds surfaced by the service layer. Controllers map these to HTTP
// statuses; nothing else crosses the API boundary unmapped.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrNotOwner           = errors.New("not authorized")
	ErrSelfFollow         = errors.New("cannot follow yourself")
)
