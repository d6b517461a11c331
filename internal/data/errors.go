package data

import "errors"

// Sentinel errors returned by the stores. The service layer matches on
// these with errors.Is to separate expected domain failures from
// unexpected driver errors; driver error text never leaves the stores'
// callers.
var (
	// ErrNotFound means no document matched the query.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)
