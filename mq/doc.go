// Package mq composes media query conditions from breakpoint references.
//
// A Request names what the caller wants, Composer resolves it against a
// breakpoints.Registry and produces a Query:
//
//	c, _ := mq.NewComposer(logger, breakpoints.Default(logger), mq.DefaultOptions())
//	q, _ := c.Compose(mq.Request{From: mq.Named("tiny"), Until: mq.Named("small")})
//	q.String() // (min-width: 20em) and (max-width: 29.99em)
//
// Widths are always emitted in em. A lower or upper bound resolving to zero
// (including the implicit "default" breakpoint) is dropped, and a Query with
// nothing left is empty, meaning the content needs no wrapper at all.
//
// Named upper bounds stop just short of the breakpoint (width minus
// Options.Epsilon) so that "until small" and "from small" never match at the
// same time. Raw lengths are used exactly as given.
package mq
