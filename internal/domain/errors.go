package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL matches every *InvalidURLError.
	ErrInvalidURL = errors.New("invalid url")

	// ErrStoreUnavailable matches every *StoreError.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidURLError reports a rejected bookmark write. URL is the offending
// value and may be empty.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("invalid url: %s [url: %s]", e.Reason, e.URL)
	}
	return "invalid url: " + e.Reason
}

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

// StoreError wraps a failure talking to the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store unavailable: failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

func (e *StoreError) Unwrap() error { return e.Err }

// Unavailable wraps err as a *StoreError for op. A nil err stays nil.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
