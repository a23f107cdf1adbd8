package breakpoints

import (
	"fmt"
)

// UndefinedError is returned when referenced breakpoint does not exist.
type UndefinedError struct {
	Name   string
	Submap string // "lengths", "features" or empty when both were searched
}

func (e *UndefinedError) Error() string {
	switch e.Submap {
	case submapLengths:
		return fmt.Sprintf("length breakpoint %q is not defined", e.Name)
	case submapFeatures:
		return fmt.Sprintf("feature breakpoint %q is not defined", e.Name)
	default:
		return fmt.Sprintf("breakpoint %q is not defined", e.Name)
	}
}

// TypeMismatchError is returned when length breakpoint does not resolve to
// a comparable number.
type TypeMismatchError struct {
	Key   string // offending breakpoint name
	Value string // its configured value
	Type  string // what it actually is
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("length breakpoints must resolve to numbers, but %q is %q, which is a %q", e.Key, e.Value, e.Type)
}
