package asset

import "errors"

var (
	// ErrAssetNotFound indicates the asset doesn't exist in the registry.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInvalidInput indicates invalid input for asset operations.
	ErrInvalidInput = errors.New("invalid asset input")
)
