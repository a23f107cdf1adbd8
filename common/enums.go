// Package common holds enums shared between configuration and rendering
// packages, so neither has to import the other.
package common

//go:generate go tool go-enum --marshal --names

// Stylesheet rendering style.
// ENUM(expanded, compressed)
type OutputStyle int

func (o OutputStyle) Compressed() bool {
	return o == OutputStyleCompressed
}

// Shape of a configured breakpoint value before it is resolved.
// ENUM(number, string, map, list)
type ValueKind int

// Resolvable returns true if value may resolve to a length.
func (k ValueKind) Resolvable() bool {
	return k == ValueKindNumber
}
