package store

import "errors"

// Sentinel errors for the record store's ingest contract. Wrapped with
// fmt.Errorf("...: %w", ...) for context at the call site.
var (
	// ErrIO indicates a file could not be opened or read.
	ErrIO = errors.New("store: io error")

	// ErrEmptyInput indicates a parts or masterParts stream contained no
	// lines at all.
	ErrEmptyInput = errors.New("store: empty input")
)
