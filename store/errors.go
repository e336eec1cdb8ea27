package store

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("store: required parameter is nil")

	// ErrReadOnly indicates a write inside a View transaction.
	ErrReadOnly = errors.New("store: write in read-only transaction")

	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrCorrupt indicates a stored value that cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt value")
)
