package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed or empty request the caller can correct.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrTimeout signals that a request exceeded its time budget.
	ErrTimeout = errors.New("request timed out")
	// ErrNotFound signals a missing document or vendor.
	ErrNotFound = errors.New("not found")
	// ErrInternal signals index or catalog corruption fatal to the request.
	ErrInternal = errors.New("internal error")
)
