package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNoSnapshot  = errors.New("no snapshot saved")
	ErrInvalidPath = errors.New("invalid snapshot path")
)
