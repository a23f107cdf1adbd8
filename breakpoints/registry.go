package breakpoints

import (
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mqc/units"
	"mqc/utils/debug"
)

// DefaultName is the implicit zero length breakpoint.
const DefaultName = "default"

const (
	submapLengths  = "lengths"
	submapFeatures = "features"
)

// Breakpoint is a resolved length breakpoint.
type Breakpoint struct {
	Name   string
	Length units.Length
	Raw    string // value as configured, "0" for implicit default
}

// Registry holds length and feature breakpoints.
type Registry struct {
	log      *zap.Logger
	base     units.Length // converts em to px when sorting
	lengths  ordered[Value]
	features ordered[[]string]
}

// New creates empty registry.
func New(log *zap.Logger) *Registry {
	r := &Registry{
		base:     units.DefaultBaseFontSize,
		lengths:  newOrdered[Value](),
		features: newOrdered[[]string](),
	}
	return r.WithLogger(log)
}

// WithLogger attaches logger used to report merge warnings.
func (r *Registry) WithLogger(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r.log = log.Named("breakpoints")
	return r
}

// WithBaseFontSize sets font size used to compare em and px lengths when
// sorting. Zero or unitless size is ignored.
func (r *Registry) WithBaseFontSize(base units.Length) *Registry {
	if base.Value > 0 && base.Unit == units.UnitPx {
		r.base = base
	}
	return r
}

// BaseFontSize returns font size used when sorting lengths.
func (r *Registry) BaseFontSize() units.Length {
	return r.base
}

// Default builds registry with built-in breakpoints.
func Default(log *zap.Logger) *Registry {
	return New(log).
		SetLength("tiny", "320px").
		SetLength("small", "480px").
		SetLength("medium", "600px").
		SetLength("large", "1024px").
		SetLength("x-large", "1280px").
		SetFeature("landscape", "(orientation: landscape)").
		SetFeature("portrait", "(orientation: portrait)")
}

// SetLength adds or replaces length breakpoint. It is meant for building
// registry, use Extend to merge tweakpoints.
func (r *Registry) SetLength(name, raw string) *Registry {
	r.lengths.set(name, NewValue(raw))
	return r
}

// SetLengthValue is SetLength for already classified values.
func (r *Registry) SetLengthValue(name string, v Value) *Registry {
	r.lengths.set(name, v)
	return r
}

// SetFeature adds or replaces feature breakpoint with one or more raw media
// feature conditions.
func (r *Registry) SetFeature(name string, conditions ...string) *Registry {
	r.features.set(name, slices.Clone(conditions))
	return r
}

// Clone returns deep copy of the registry.
func (r *Registry) Clone() *Registry {
	return &Registry{
		log:      r.log,
		base:     r.base,
		lengths:  r.lengths.clone(func(v Value) Value { return v }),
		features: r.features.clone(func(v []string) []string { return slices.Clone(v) }),
	}
}

// LengthNames returns names of length breakpoints in definition order.
func (r *Registry) LengthNames() []string {
	return r.lengths.keys()
}

// FeatureNames returns names of feature breakpoints in definition order.
func (r *Registry) FeatureNames() []string {
	return r.features.keys()
}

// GetLength resolves length breakpoint. Implicit default breakpoint
// resolves to zero unless it was configured explicitly.
func (r *Registry) GetLength(name string) (units.Length, error) {
	v, ok := r.lengths.get(name)
	if !ok {
		if name == DefaultName {
			return units.Length{}, nil
		}
		return units.Length{}, &UndefinedError{Name: name, Submap: submapLengths}
	}
	return v.Length(name)
}

// Width returns configured text of length breakpoint.
func (r *Registry) Width(name string) (string, error) {
	v, ok := r.lengths.get(name)
	if !ok {
		if name == DefaultName {
			return "0", nil
		}
		return "", &UndefinedError{Name: name, Submap: submapLengths}
	}
	return v.Raw, nil
}

// Feature returns media feature conditions of feature breakpoint.
func (r *Registry) Feature(name string) ([]string, error) {
	v, ok := r.features.get(name)
	if !ok {
		return nil, &UndefinedError{Name: name, Submap: submapFeatures}
	}
	return slices.Clone(v), nil
}

// HasLength returns true if name is a length breakpoint, including implicit
// default.
func (r *Registry) HasLength(name string) bool {
	_, ok := r.lengths.get(name)
	return ok || name == DefaultName
}

// HasFeature returns true if name is a feature breakpoint.
func (r *Registry) HasFeature(name string) bool {
	_, ok := r.features.get(name)
	return ok
}

// IsDefined returns true if name exists in either submap.
func (r *Registry) IsDefined(name string) bool {
	return r.HasLength(name) || r.HasFeature(name)
}

// SortLengths returns explicitly configured length breakpoints in ascending
// order. Lengths are compared in px with em converted using registry base
// font size (16px unless set with WithBaseFontSize), entries of equal
// length keep definition order.
func (r *Registry) SortLengths() ([]Breakpoint, error) {
	type keyed struct {
		bp Breakpoint
		px float64
	}

	all := make([]keyed, 0, r.lengths.len())
	for _, name := range r.lengths.names {
		v := r.lengths.values[name]
		l, err := v.Length(name)
		if err != nil {
			return nil, err
		}
		px, err := units.ToPx(l, r.base)
		if err != nil {
			return nil, &TypeMismatchError{Key: name, Value: v.Raw, Type: "number with unit " + l.Unit}
		}
		all = append(all, keyed{bp: Breakpoint{Name: name, Length: l, Raw: v.Raw}, px: px})
	}

	slices.SortStableFunc(all, func(a, b keyed) int {
		switch {
		case a.px < b.px:
			return -1
		case a.px > b.px:
			return 1
		default:
			return 0
		}
	})

	sorted := make([]Breakpoint, 0, len(all))
	for _, k := range all {
		sorted = append(sorted, k.bp)
	}
	return sorted, nil
}

// Tiers returns sorted length breakpoints preceded by implicit default
// breakpoint, unless it was configured explicitly.
func (r *Registry) Tiers() ([]Breakpoint, error) {
	sorted, err := r.SortLengths()
	if err != nil {
		return nil, err
	}
	if _, ok := r.lengths.get(DefaultName); ok {
		return sorted, nil
	}
	return append([]Breakpoint{{Name: DefaultName, Raw: "0"}}, sorted...), nil
}

// Validate reports every length breakpoint which cannot be resolved and
// every empty feature breakpoint.
func (r *Registry) Validate() (err error) {
	for _, name := range r.lengths.names {
		l, er := r.lengths.values[name].Length(name)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}
		if _, er := units.ToPx(l, r.base); er != nil {
			err = multierr.Append(err, &TypeMismatchError{Key: name, Value: r.lengths.values[name].Raw, Type: "number with unit " + l.Unit})
		}
	}
	for _, name := range r.features.names {
		if len(r.features.values[name]) == 0 {
			err = multierr.Append(err, &TypeMismatchError{Key: name, Value: "", Type: "empty feature list"})
		}
	}
	return err
}

// Dump returns human readable representation of the registry.
func (r *Registry) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "%s:", submapLengths)
	for _, name := range r.lengths.names {
		v := r.lengths.values[name]
		tw.Value(1, name, v.Raw, v.Kind.String())
	}
	tw.Line(0, "%s:", submapFeatures)
	for _, name := range r.features.names {
		tw.TextBlock(1, name, strings.Join(r.features.values[name], " and "))
	}
	return tw.String()
}
