package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidURLError(t *testing.T) {
	err := error(&InvalidURLError{URL: "ftp://x", Reason: "URL must start with http:// or https://"})

	if !errors.Is(err, ErrInvalidURL) {
		t.Error("InvalidURLError should match ErrInvalidURL")
	}
	if errors.Is(err, ErrStoreUnavailable) {
		t.Error("InvalidURLError should not match ErrStoreUnavailable")
	}
	if !strings.Contains(err.Error(), "ftp://x") {
		t.Errorf("Error() = %q, should carry the url", err.Error())
	}

	var target *InvalidURLError
	wrapped := fmt.Errorf("add bookmark: %w", err)
	if !errors.As(wrapped, &target) || target.URL != "ftp://x" {
		t.Errorf("errors.As() did not recover the offending url")
	}
}

func TestInvalidURLErrorWithoutURL(t *testing.T) {
	err := &InvalidURLError{Reason: "URL cannot be empty"}
	if err.Error() != "invalid url: URL cannot be empty" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("add bookmark", cause)

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("Unavailable() should match ErrStoreUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("Unavailable() should unwrap to the cause")
	}
	if Unavailable("noop", nil) != nil {
		t.Error("Unavailable(nil) should be nil")
	}
}
