package transcript

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every error caused by unusable transcript input
var ErrMalformed = errors.New("malformed transcript")

// input is not well-formed JSON
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("error parsing JSON: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func (e *DeserializationError) Is(target error) bool {
	return target == ErrMalformed
}

// input parsed but lacks the diarized_transcript.entries path, or a
// field has the wrong JSON type
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid JSON format at %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid JSON format: %q not found", e.Path)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool {
	return target == ErrMalformed
}
