package payload

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("embedded payload not found")
	ErrMalformedPayload = errors.New("embedded payload is not valid JSON")
	ErrMissingField     = errors.New("field missing from payload")
)

// MissingFieldError reports the deepest path prefix that could not be resolved.
type MissingFieldError struct {
	Path []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, strings.Join(e.Path, "."))
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
