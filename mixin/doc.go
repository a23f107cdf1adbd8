// Package mixin produces stylesheet fragments from media query requests:
// content wrapped into composed media queries, declarations describing
// which breakpoint is active and the breakpoint snapshot export.
package mixin
