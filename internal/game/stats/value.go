// Package stats defines the character attribute bundle and its deterministic
// generator.
package stats

import (
	"errors"
	"fmt"
)

// MinValue is the floor every attribute is clamped to.
const MinValue = 1

// ErrBelowMinimum is returned when a Value is constructed below MinValue.
var ErrBelowMinimum = errors.New("attribute value below minimum")

// Value is a labelled attribute integer that is never below MinValue.
type Value struct {
	label string
	n     int
}

// NewValue validates n and binds it to label.
//
// Precondition: label must be non-empty.
// Postcondition: Returns a Value with Int() == n, or an error wrapping ErrBelowMinimum.
func NewValue(label string, n int) (Value, error) {
	if n < MinValue {
		return Value{}, fmt.Errorf("%s must be at least %d, got %d: %w", label, MinValue, n, ErrBelowMinimum)
	}
	return Value{label: label, n: n}, nil
}

// clamped builds a Value, raising n to MinValue first. It cannot fail.
func clamped(label string, n int) Value {
	return Value{label: label, n: max(MinValue, n)}
}

// Int returns the numeric value.
func (v Value) Int() int { return v.n }

// Label returns the display label.
func (v Value) Label() string { return v.label }

// String renders "Label: n".
func (v Value) String() string {
	return fmt.Sprintf("%s: %d", v.label, v.n)
}
