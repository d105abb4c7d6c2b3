package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("sender and receiver are the same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrUserHasAccounts   = errors.New("user still owns accounts")
)

// FormatError reports malformed input. It is raised before anything is written.
type FormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Reason, e.Value)
}

// StorageError is the only error type that leaves the persistence boundary for
// database failures. It deliberately carries text only.
type StorageError struct {
	Op      string
	Message string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
