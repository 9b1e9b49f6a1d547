package keys

import (
	"errors"
	"fmt"
)

var (
	ErrSealFailed  = errors.New("keys: seal failed")
	ErrOpenFailed  = errors.New("keys: open failed")
	ErrKeyMismatch = errors.New("keys: secret key does not match public key")
)

// SizeMismatchError reports key bytes whose length differs from the fixed
// size of the role they were converted to.
type SizeMismatchError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("keys: %s: want %d bytes, got %d", e.Field, e.Expected, e.Actual)
}

// CheckSize returns a *SizeMismatchError when len(b) != expected.
func CheckSize(field string, b []byte, expected int) error {
	if len(b) != expected {
		return &SizeMismatchError{Field: field, Expected: expected, Actual: len(b)}
	}
	return nil
}
