package app

import "errors"

// Error taxonomy for remote operations. Remote implementations wrap their
// failures with one of these so the store can tell transport trouble apart
// from an unreadable body.
var (
	ErrNetwork  = errors.New("network failure")
	ErrDecode   = errors.New("decode failure")
	ErrNotFound = errors.New("not found")
)
