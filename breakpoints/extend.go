package breakpoints

import (
	"slices"

	"go.uber.org/zap"
)

// Extend returns new registry with both submaps of tw merged into r.
// Colliding keys keep their value from r unless overwrite is set, either
// way a warning is logged.
func (r *Registry) Extend(tw *Registry, overwrite bool) *Registry {
	out := r.Clone()
	if tw == nil {
		return out
	}
	mergeInto(out.log, submapLengths, &out.lengths, &tw.lengths, overwrite, func(v Value) Value { return v })
	mergeInto(out.log, submapFeatures, &out.features, &tw.features, overwrite, func(v []string) []string { return slices.Clone(v) })
	return out
}

// ExtendLengths is like Extend but merges only length breakpoints,
// features are inherited from r unchanged.
func (r *Registry) ExtendLengths(tw *Registry, overwrite bool) *Registry {
	out := r.Clone()
	if tw == nil {
		return out
	}
	mergeInto(out.log, submapLengths, &out.lengths, &tw.lengths, overwrite, func(v Value) Value { return v })
	return out
}

// ExtendFeatures is like Extend but merges only feature breakpoints,
// lengths are inherited from r unchanged.
func (r *Registry) ExtendFeatures(tw *Registry, overwrite bool) *Registry {
	out := r.Clone()
	if tw == nil {
		return out
	}
	mergeInto(out.log, submapFeatures, &out.features, &tw.features, overwrite, func(v []string) []string { return slices.Clone(v) })
	return out
}

func mergeInto[T any](log *zap.Logger, submap string, dst, src *ordered[T], overwrite bool, copyValue func(T) T) {
	for _, name := range src.names {
		if _, exists := dst.get(name); exists {
			if !overwrite {
				log.Warn("Tweakpoint already defined, keeping existing value", zap.String("submap", submap), zap.String("breakpoint", name))
				continue
			}
			log.Warn("Tweakpoint overwrites existing breakpoint", zap.String("submap", submap), zap.String("breakpoint", name))
		} else {
			log.Debug("Adding tweakpoint", zap.String("submap", submap), zap.String("breakpoint", name))
		}
		dst.set(name, copyValue(src.values[name]))
	}
}
