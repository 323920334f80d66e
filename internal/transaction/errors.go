package transaction

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrAmountOutOfRange = errors.New("amount is too large")
	ErrInvalidType      = errors.New("type must be income or expense")
	ErrInvalidDate      = errors.New("invalid date")
)

// ValidationError describes input rejected before it reaches the store.
// Field names the offending input so a form can highlight it.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: err.Error(), Err: err}
}
