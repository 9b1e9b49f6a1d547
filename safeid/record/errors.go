package record

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

var (
	ErrMalformedRecord = errors.New("record: malformed record")
	ErrUnexpectedTag   = errors.New("record: unexpected wire tag")
	ErrAddressMismatch = errors.New("record: address does not match public keys")
)

// MalformedRecordError aggregates every field that failed to convert while
// decoding. errors.As reaches the individual *keys.SizeMismatchError values.
type MalformedRecordError struct {
	err error
}

func newMalformedRecordError(err error) *MalformedRecordError {
	return &MalformedRecordError{err: err}
}

func (e *MalformedRecordError) Error() string {
	causes := multierr.Errors(e.err)
	msgs := make([]string, 0, len(causes))
	for _, c := range causes {
		msgs = append(msgs, c.Error())
	}
	return ErrMalformedRecord.Error() + ": " + strings.Join(msgs, "; ")
}

// Errors returns the individual field failures.
func (e *MalformedRecordError) Errors() []error { return multierr.Errors(e.err) }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

func (e *MalformedRecordError) Unwrap() []error { return multierr.Errors(e.err) }
