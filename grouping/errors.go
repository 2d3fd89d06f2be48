package grouping

import (
	"errors"
	"fmt"
)

// ErrKeyReopened means the input was not sorted: a key's records appeared in
// two separate runs and the second run would overwrite the first document.
var ErrKeyReopened = errors.New("group key already written")

type ReopenError struct {
	Key string
	// Timestamp of the first record of the second run.
	Timestamp string
}

func (e *ReopenError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Key, e.Timestamp, ErrKeyReopened)
}

func (e *ReopenError) Unwrap() error {
	return ErrKeyReopened
}
