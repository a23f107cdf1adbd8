package breakpoints

import (
	"mqc/common"
	"mqc/units"
)

// Value is a length breakpoint value as it was configured.
type Value struct {
	Raw  string
	Kind common.ValueKind
}

// NewValue classifies scalar configuration text: anything units.Parse
// accepts is a number, the rest is a string.
func NewValue(raw string) Value {
	if _, err := units.Parse(raw); err != nil {
		return Value{Raw: raw, Kind: common.ValueKindString}
	}
	return Value{Raw: raw, Kind: common.ValueKindNumber}
}

// Length resolves value for breakpoint name.
func (v Value) Length(name string) (units.Length, error) {
	if !v.Kind.Resolvable() {
		return units.Length{}, &TypeMismatchError{Key: name, Value: v.Raw, Type: v.Kind.String()}
	}
	l, err := units.Parse(v.Raw)
	if err != nil {
		return units.Length{}, &TypeMismatchError{Key: name, Value: v.Raw, Type: common.ValueKindString.String()}
	}
	return l, nil
}

func (v Value) String() string {
	return v.Raw
}

// ordered is an insertion ordered string keyed map.
type ordered[T any] struct {
	names  []string
	values map[string]T
}

func newOrdered[T any]() ordered[T] {
	return ordered[T]{values: make(map[string]T)}
}

func (o *ordered[T]) get(name string) (T, bool) {
	v, ok := o.values[name]
	return v, ok
}

// set stores value keeping original position of existing keys, returns true
// if key was already present.
func (o *ordered[T]) set(name string, v T) bool {
	_, exists := o.values[name]
	if !exists {
		o.names = append(o.names, name)
	}
	o.values[name] = v
	return exists
}

func (o *ordered[T]) len() int {
	return len(o.names)
}

func (o *ordered[T]) keys() []string {
	return append([]string(nil), o.names...)
}

func (o *ordered[T]) clone(copyValue func(T) T) ordered[T] {
	c := ordered[T]{
		names:  append([]string(nil), o.names...),
		values: make(map[string]T, len(o.values)),
	}
	for k, v := range o.values {
		c.values[k] = copyValue(v)
	}
	return c
}
