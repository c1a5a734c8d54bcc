package common

import (
	"fmt"
)

// FormatError reports a byte buffer whose width does not match the field it
// is encoded into. When AtLeast is set, Expected is a lower bound.
type FormatError struct {
	Field    string
	Expected int
	Actual   int
	AtLeast  bool
}

func (e *FormatError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("invalid %s: expected at least %d bytes, got %d", e.Field, e.Expected, e.Actual)
	}
	return fmt.Sprintf("invalid %s: expected %d bytes, got %d", e.Field, e.Expected, e.Actual)
}

// RangeError reports a numeric value that does not fit the width of its field.
type RangeError struct {
	Field string
	Value string
	Width int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %s does not fit in %d bytes", e.Field, e.Value, e.Width)
}

// SequencingError reports a builder operation invoked from the wrong state.
type SequencingError struct {
	Operation string
	State     string
	Required  string
}

func (e *SequencingError) Error() string {
	return fmt.Sprintf("cannot %s in state %s (requires %s)", e.Operation, e.State, e.Required)
}

func NewFormatError(field string, expected, actual int) error {
	return &FormatError{Field: field, Expected: expected, Actual: actual}
}

func NewShortBufferError(field string, minimum, actual int) error {
	return &FormatError{Field: field, Expected: minimum, Actual: actual, AtLeast: true}
}

func NewRangeError(field string, value interface{}, width int) error {
	return &RangeError{Field: field, Value: fmt.Sprint(value), Width: width}
}
