package services

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("duplicate record")
)

// ValidationError rejects user-supplied values; Detail is shown to the end
// user as-is.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }
