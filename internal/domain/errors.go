package domain

import "errors"

var (
	// ErrNotFound: the referenced order/record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: an order with the same id already exists.
	ErrConflict = errors.New("order id already exists")
)

// ValidationError rejects a malformed payload. Nothing is persisted
// when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Reason }

func Invalid(reason string) error { return &ValidationError{Reason: reason} }
