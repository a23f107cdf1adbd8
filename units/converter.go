package units

import (
	"fmt"

	"go.uber.org/zap"
)

// Converter converts pixel lengths into em using fixed base font size.
type Converter struct {
	log  *zap.Logger
	base float64 // px
}

// NewConverter creates converter for the given base font size, which must be
// a positive px (or bare number) length.
func NewConverter(log *zap.Logger, base Length) (*Converter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if base.Unit != UnitPx && !base.Unitless() {
		return nil, &ConversionError{Input: base.String(), Unit: base.Unit}
	}
	if base.Value <= 0 {
		return nil, &ConversionError{Input: base.String(), Reason: "base font size must be positive"}
	}
	return &Converter{log: log.Named("units"), base: base.Value}, nil
}

// Base returns base font size the converter divides by.
func (c *Converter) Base() Length {
	return Px(c.base)
}

// ToEm converts px or unitless value to em. Values already in em are
// returned unchanged. Unitless values are treated as pixels and produce a
// warning unless suppressWarnings is set.
func (c *Converter) ToEm(v Length, suppressWarnings bool) (Length, error) {
	switch v.Unit {
	case UnitEm:
		return v, nil
	case UnitPx:
	case UnitNone:
		if !suppressWarnings {
			c.log.Warn("Unitless value assumed to be in pixels", zap.Stringer("value", v))
		}
	default:
		return Length{}, &ConversionError{Input: v.String(), Unit: v.Unit}
	}
	em := Em(round(v.Value / c.base))
	c.log.Debug("Converted length", zap.Stringer("from", v), zap.Stringer("to", em))
	return em, nil
}

// ParseToEm parses s and converts result to em.
func (c *Converter) ParseToEm(s string, suppressWarnings bool) (Length, error) {
	v, err := Parse(s)
	if err != nil {
		return Length{}, err
	}
	return c.ToEm(v, suppressWarnings)
}

// ToPx returns length in pixels, em is multiplied by base font size. It is
// used to compare lengths expressed in different units.
func ToPx(v Length, base Length) (float64, error) {
	switch v.Unit {
	case UnitPx, UnitNone:
		return v.Value, nil
	case UnitEm:
		return v.Value * base.Value, nil
	default:
		return 0, fmt.Errorf("unit %q is not comparable with px", v.Unit)
	}
}
