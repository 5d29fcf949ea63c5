package storage

import "errors"

// Common storage errors
var (
	// ErrMetaDataNotFound indicates that metadata item was not found
	ErrMetaDataNotFound = errors.New("metadata not found")

	// ErrEmptyKey indicates that data item has no key
	ErrEmptyKey = errors.New("empty key")
)
