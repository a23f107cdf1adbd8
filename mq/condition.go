package mq

import (
	"strings"

	"mqc/units"
)

type conditionKind int

const (
	kindNone conditionKind = iota
	kindNamed
	kindRaw
)

// Condition is either a reference to a breakpoint by name or raw text used
// as is: a length for From/Until, a parenthesized media feature for Misc.
// Zero value means "not set".
type Condition struct {
	kind conditionKind
	text string
}

// Named references breakpoint by name.
func Named(name string) Condition {
	return Condition{kind: kindNamed, text: name}
}

// Raw wraps literal text.
func Raw(text string) Condition {
	return Condition{kind: kindRaw, text: text}
}

func (c Condition) IsZero() bool {
	return c.kind == kindNone
}

func (c Condition) IsNamed() bool {
	return c.kind == kindNamed
}

func (c Condition) IsRaw() bool {
	return c.kind == kindRaw
}

// Text returns breakpoint name or raw text.
func (c Condition) Text() string {
	return c.text
}

func (c Condition) String() string {
	switch c.kind {
	case kindNamed:
		return c.text
	case kindRaw:
		return "raw(" + c.text + ")"
	default:
		return ""
	}
}

// ParseBound classifies From/Until argument text: anything that parses as
// a number is a raw length, the rest is a breakpoint name. Empty text
// results in zero Condition.
func ParseBound(s string) Condition {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Condition{}
	}
	if _, err := units.Parse(s); err == nil {
		return Raw(s)
	}
	return Named(s)
}

// ParseCondition classifies Misc argument text: parenthesized text is a raw
// media feature, the rest is a feature breakpoint name.
func ParseCondition(s string) Condition {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Condition{}
	}
	if strings.HasPrefix(s, "(") {
		return Raw(s)
	}
	return Named(s)
}
