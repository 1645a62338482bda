package clip

import "errors"

var (
	// ErrClipNotFound indicates the clip doesn't exist in the store.
	ErrClipNotFound = errors.New("clip not found")
	// ErrInvalidInput indicates invalid input for clip operations.
	ErrInvalidInput = errors.New("invalid clip input")
)
