package domain

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidFilter   = errors.New("invalid filter")
)
