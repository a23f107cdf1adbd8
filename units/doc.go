// Package units parses CSS lengths and converts absolute pixel lengths into
// em, the relative unit used for media query width conditions.
//
// Only px (or a bare number, which is taken as px) converts. A value that
// is already in em passes through unchanged, everything else is rejected
// with a *ConversionError naming the offending unit:
//
//	conv, _ := units.NewConverter(logger, units.DefaultBaseFontSize)
//	em, err := conv.ToEm(units.MustParse("24px"), false) // 1.5em
//
// Bare numbers are accepted but logged as a warning unless the caller asks
// to suppress it.
package units
