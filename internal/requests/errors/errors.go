package errors

import "errors"

var (
	ErrNotFound = errors.New("item request not found")

	ErrInvalidID = errors.New("invalid item request ID format")
)
