package units

import (
	"fmt"
)

// ConversionError is returned when value cannot be expressed in em.
type ConversionError struct {
	Input  string // offending value as given
	Unit   string // unsupported unit, empty when value is not a number at all
	Reason string
}

func (e *ConversionError) Error() string {
	if len(e.Unit) > 0 {
		return fmt.Sprintf("unable to convert %q to em: unit %q has no em equivalent", e.Input, e.Unit)
	}
	return fmt.Sprintf("unable to convert %q to em: %s", e.Input, e.Reason)
}
