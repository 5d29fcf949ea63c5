package storage

import "errors"

// Common device storage errors
var (
	// ErrItemNotFound indicates that data item was not found
	ErrItemNotFound = errors.New("data item not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrEmptyKey indicates that data item has no key
	ErrEmptyKey = errors.New("empty key")
)
