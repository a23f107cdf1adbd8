// Package breakpoints keeps named thresholds used to build media queries.
//
// A Registry has two independent submaps:
//
//   - lengths: name -> length ("tiny: 320px"), used by min-width/max-width
//     conditions;
//   - features: name -> one or more raw media feature conditions
//     ("landscape: (orientation: landscape)").
//
// Values are stored as configured and resolved on demand, so a
// misconfigured length is reported when it is used (or by Validate) with a
// *TypeMismatchError rather than silently dropped at load time.
//
// The breakpoint named "default" always exists implicitly with zero length
// and stands for "no lower bound".
//
// Registries are built once, either with Default or from configuration,
// and treated as read-only afterwards. Tweakpoints are merged with Extend,
// ExtendLengths or ExtendFeatures which return new registries.
package breakpoints
