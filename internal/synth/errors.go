package synth

import (
	"errors"
	"fmt"

	artimage "string-art/internal/image"
)

// ErrInvalidParameter is matched by every *InvalidParameterError.
var ErrInvalidParameter = errors.New("synth: invalid parameter")

// ErrImageDecode is matched when the source image cannot be decoded.
var ErrImageDecode = artimage.ErrImageDecode

// InvalidParameterError reports a synthesis parameter outside its sane bounds.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("synth: invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is reports ErrInvalidParameter as a match.
func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func invalid(field string, value any, format string, args ...any) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
