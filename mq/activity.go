package mq

import (
	"mqc/breakpoints"
)

// Activity names breakpoint which is active before, inside and after
// media query block.
type Activity struct {
	Before string
	During string
	After  string
}

// Activity reports which breakpoint is active around the block composed
// from req. Outside of the block the inherited breakpoint stays active
// (default when empty), inside of it the lower bound breakpoint becomes
// active if it was given by name.
func (c *Composer) Activity(req Request, inherited string) Activity {
	if len(inherited) == 0 {
		inherited = breakpoints.DefaultName
	}
	a := Activity{Before: inherited, During: inherited, After: inherited}
	if req.From.IsNamed() && c.reg.HasLength(req.From.Text()) {
		a.During = req.From.Text()
	}
	return a
}
