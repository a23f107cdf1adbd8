package mq

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mqc/breakpoints"
	"mqc/units"
)

// Options control query composition.
type Options struct {
	BaseFontSize     units.Length // px used to convert lengths to em
	Epsilon          units.Length // subtracted from named upper bounds
	DefaultMediaType string       // media type which is never emitted
	SuppressWarnings bool         // do not warn about unitless lengths
}

// DefaultOptions returns 16px base font size, 0.01em epsilon and "all" as
// default media type.
func DefaultOptions() Options {
	return Options{
		BaseFontSize:     units.DefaultBaseFontSize,
		Epsilon:          units.Em(0.01),
		DefaultMediaType: "all",
	}
}

// Composer resolves requests against breakpoint registry.
type Composer struct {
	log     *zap.Logger
	reg     *breakpoints.Registry
	conv    *units.Converter
	opts    Options
	epsilon units.Length // em
}

// NewComposer creates composer over registry. Registry is referenced, not
// copied, use WithRegistry to compose against extended registry. Registry
// sorts lengths with composer base font size from now on.
func NewComposer(log *zap.Logger, reg *breakpoints.Registry, opts Options) (*Composer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = breakpoints.Default(log)
	}
	if len(opts.DefaultMediaType) == 0 {
		opts.DefaultMediaType = "all"
	}

	conv, err := units.NewConverter(log, opts.BaseFontSize)
	if err != nil {
		return nil, fmt.Errorf("bad base font size: %w", err)
	}
	epsilon, err := conv.ToEm(opts.Epsilon, true)
	if err != nil {
		return nil, fmt.Errorf("bad epsilon: %w", err)
	}
	return &Composer{
		log:     log.Named("mq"),
		reg:     reg.WithBaseFontSize(conv.Base()),
		conv:    conv,
		opts:    opts,
		epsilon: epsilon,
	}, nil
}

// Registry returns registry composer resolves names against.
func (c *Composer) Registry() *breakpoints.Registry {
	return c.reg
}

// Options returns composer options.
func (c *Composer) Options() Options {
	return c.opts
}

// WithRegistry returns composer with the same options over another registry.
func (c *Composer) WithRegistry(reg *breakpoints.Registry) *Composer {
	n := *c
	n.reg = reg.WithBaseFontSize(c.conv.Base())
	return &n
}

// Compose resolves request into media query. Returned errors are wrapped
// with request field name and could be inspected with errors.As for
// *breakpoints.UndefinedError, *breakpoints.TypeMismatchError and
// *units.ConversionError.
func (c *Composer) Compose(req Request) (Query, error) {
	var q Query

	if mt := strings.TrimSpace(req.MediaType); len(mt) > 0 && !strings.EqualFold(mt, c.opts.DefaultMediaType) {
		q.MediaType = mt
	}

	if !req.From.IsZero() {
		l, err := c.bound(req.From, false)
		if err != nil {
			return Query{}, fmt.Errorf("from: %w", err)
		}
		if !l.IsZero() {
			q.Conditions = append(q.Conditions, "(min-width: "+l.String()+")")
		}
	}

	if !req.Until.IsZero() {
		l, err := c.bound(req.Until, true)
		if err != nil {
			return Query{}, fmt.Errorf("until: %w", err)
		}
		if !l.IsZero() {
			q.Conditions = append(q.Conditions, "(max-width: "+l.String()+")")
		}
	}

	for _, m := range req.Misc {
		switch {
		case m.IsNamed():
			conds, err := c.reg.Feature(m.Text())
			if err != nil {
				return Query{}, fmt.Errorf("misc: %w", err)
			}
			q.Conditions = append(q.Conditions, conds...)
		case m.IsRaw():
			q.Conditions = append(q.Conditions, m.Text())
		}
	}

	c.log.Debug("Composed media query",
		zap.Stringer("from", req.From),
		zap.Stringer("until", req.Until),
		zap.String("media-type", req.MediaType),
		zap.Stringer("query", q))
	return q, nil
}

// bound resolves lower or upper bound to em. Named upper bound which is not
// zero is moved down by epsilon.
func (c *Composer) bound(cond Condition, upper bool) (units.Length, error) {
	var (
		l   units.Length
		err error
	)
	if cond.IsNamed() {
		if l, err = c.reg.GetLength(cond.Text()); err != nil {
			return units.Length{}, err
		}
	} else {
		if l, err = units.Parse(cond.Text()); err != nil {
			return units.Length{}, err
		}
	}
	if l.IsZero() {
		return units.Length{}, nil
	}

	em, err := c.conv.ToEm(l, c.opts.SuppressWarnings)
	if err != nil {
		return units.Length{}, err
	}
	if upper && cond.IsNamed() {
		return em.Sub(c.epsilon)
	}
	return em, nil
}
