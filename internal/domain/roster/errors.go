package roster

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrInvalidName   = errors.New("invalid competitor name")
	ErrDuplicateName = errors.New("competitor name already taken")
	ErrNotFound      = errors.New("competitor not found")
)
