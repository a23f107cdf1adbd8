package mq

import (
	"strings"
)

// Request describes media query to compose. Every field is optional.
type Request struct {
	From      Condition   // lower bound: breakpoint name or raw length
	Until     Condition   // upper bound: breakpoint name or raw length
	Misc      []Condition // feature breakpoint names or raw media features, in order
	MediaType string      // empty or default media type is not emitted
}

// Query is composed media query.
type Query struct {
	MediaType  string   // empty when not emitted
	Conditions []string // parenthesized media features in emission order
}

// IsEmpty returns true if content needs no media query wrapper.
func (q Query) IsEmpty() bool {
	return len(q.MediaType) == 0 && len(q.Conditions) == 0
}

// Parts returns every emitted clause, media type first.
func (q Query) Parts() []string {
	parts := make([]string, 0, len(q.Conditions)+1)
	if len(q.MediaType) > 0 {
		parts = append(parts, q.MediaType)
	}
	return append(parts, q.Conditions...)
}

// String returns media query condition text.
func (q Query) String() string {
	return strings.Join(q.Parts(), " and ")
}

// And combines q with nested query. Outer media type wins.
func (q Query) And(inner Query) Query {
	out := Query{MediaType: q.MediaType}
	if len(out.MediaType) == 0 {
		out.MediaType = inner.MediaType
	}
	out.Conditions = make([]string, 0, len(q.Conditions)+len(inner.Conditions))
	out.Conditions = append(out.Conditions, q.Conditions...)
	out.Conditions = append(out.Conditions, inner.Conditions...)
	return out
}
