package units

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const (
	UnitNone = ""
	UnitPx   = "px"
	UnitEm   = "em"
)

// precision matches what stylesheet compilers print for numbers.
const precision = 1e10

// DefaultBaseFontSize is the browser default root font size.
var DefaultBaseFontSize = Length{Value: 16, Unit: UnitPx}

// Length is a CSS number with an optional unit.
type Length struct {
	Value float64
	Unit  string // lower case: "", "px", "em", "rem", "%", ...
}

// Px returns length in pixels.
func Px(v float64) Length {
	return Length{Value: v, Unit: UnitPx}
}

// Em returns length in ems.
func Em(v float64) Length {
	return Length{Value: v, Unit: UnitEm}
}

// IsZero reports whether length is zero regardless of its unit.
func (l Length) IsZero() bool {
	return round(l.Value) == 0
}

// Unitless returns true for bare numbers.
func (l Length) Unitless() bool {
	return l.Unit == UnitNone
}

// Sub subtracts o from l. Units must match, a unitless zero is compatible
// with anything.
func (l Length) Sub(o Length) (Length, error) {
	switch {
	case l.Unit == o.Unit:
	case o.Unitless() && o.IsZero():
	case l.Unitless() && l.IsZero():
		l.Unit = o.Unit
	default:
		return Length{}, fmt.Errorf("incompatible units %q and %q", l.Unit, o.Unit)
	}
	return Length{Value: round(l.Value - o.Value), Unit: l.Unit}, nil
}

// String renders length the way it appears in stylesheet text, with no
// trailing zeros and no unit for zero-free bare numbers.
func (l Length) String() string {
	return formatNumber(l.Value) + l.Unit
}

func round(v float64) float64 {
	return math.Round(v*precision) / precision
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(round(v), 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// Parse parses single CSS numeric value: number, dimension or percentage.
// Surrounding whitespace is allowed, anything else results in
// *ConversionError.
func Parse(s string) (Length, error) {
	var (
		l     Length
		found bool
	)

	lexer := css.NewLexer(parse.NewInputString(s))
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return Length{}, &ConversionError{Input: s, Reason: err.Error()}
			}
			if !found {
				return Length{}, &ConversionError{Input: s, Reason: "not a number"}
			}
			return l, nil
		case css.WhitespaceToken:
			continue
		case css.NumberToken, css.DimensionToken, css.PercentageToken:
			if found {
				return Length{}, &ConversionError{Input: s, Reason: "not a single value"}
			}
			v, unit, ok := splitDimension(string(data))
			if !ok {
				return Length{}, &ConversionError{Input: s, Reason: "not a number"}
			}
			l, found = Length{Value: v, Unit: unit}, true
		default:
			return Length{}, &ConversionError{Input: s, Reason: "not a number"}
		}
	}
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Length {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// splitDimension extracts numeric value and unit from number, dimension or
// percentage token text.
func splitDimension(s string) (float64, string, bool) {
	end := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.':
			end = i + 1
		case (c == '+' || c == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
			end = i + 1
		case (c == 'e' || c == 'E') && i > 0 && i+1 < len(s) && isExponentStart(s[i+1:]):
			end = i + 1
		default:
			i = len(s)
		}
	}
	if end == 0 {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, "", false
	}
	return v, strings.ToLower(s[end:]), true
}

func isExponentStart(s string) bool {
	if len(s) > 1 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}
