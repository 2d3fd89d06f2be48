package takeout

import (
	"errors"
	"fmt"
)

// ErrEndOfInput is returned by Next once the locations array is exhausted.
var ErrEndOfInput = errors.New("end of input")

var (
	ErrMissingLocations = errors.New(`missing "locations" array`)
	ErrMalformedInput   = errors.New("malformed input")
	ErrMalformedRecord  = errors.New("malformed location record")
)

// DecodeError identifies the record that failed to decode.
type DecodeError struct {
	// Index is the position of the record in the locations array.
	Index int
	// Field is empty when the record as a whole is malformed.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("location %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("location %d field %q: %v", e.Index, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func recordError(index int, field string, format string, args ...any) *DecodeError {
	return &DecodeError{
		Index: index,
		Field: field,
		Err:   fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...)),
	}
}
