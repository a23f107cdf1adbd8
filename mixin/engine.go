package mixin

import (
	"go.uber.org/zap"

	"mqc/breakpoints"
	"mqc/css"
	"mqc/mq"
)

const (
	DefaultExportSelector       = "head:after"
	DefaultActivePropertyPrefix = "active"
)

// Options control generated declarations.
type Options struct {
	ExportSelector       string // rule receiving exported snapshot
	ActivePropertyPrefix string // active breakpoint declarations are <prefix>-before etc.
}

// Engine generates stylesheet fragments using composer and its registry.
type Engine struct {
	log      *zap.Logger
	composer *mq.Composer
	parser   *css.Parser
	opts     Options
}

// New creates engine. Empty options fall back to defaults.
func New(log *zap.Logger, composer *mq.Composer, opts Options) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.ExportSelector) == 0 {
		opts.ExportSelector = DefaultExportSelector
	}
	if len(opts.ActivePropertyPrefix) == 0 {
		opts.ActivePropertyPrefix = DefaultActivePropertyPrefix
	}
	return &Engine{
		log:      log.Named("mixin"),
		composer: composer,
		parser:   css.NewParser(log),
		opts:     opts,
	}
}

// Composer returns composer engine resolves requests with.
func (e *Engine) Composer() *mq.Composer {
	return e.composer
}

// Parse parses stylesheet text.
func (e *Engine) Parse(data []byte, source ...string) (*css.Stylesheet, error) {
	return e.parser.Parse(data, source...)
}

// MQ places body under media query composed from req. When query is empty
// body is returned unwrapped.
func (e *Engine) MQ(req mq.Request, body *css.Stylesheet) (*css.Stylesheet, error) {
	q, err := e.composer.Compose(req)
	if err != nil {
		return nil, err
	}
	if q.IsEmpty() {
		e.log.Debug("Media query is empty, content is not wrapped")
	}
	return body.Wrap(q.String()), nil
}

// MQText parses body and wraps it with MQ.
func (e *Engine) MQText(req mq.Request, body []byte) (*css.Stylesheet, error) {
	sheet, err := e.Parse(body)
	if err != nil {
		return nil, err
	}
	return e.MQ(req, sheet)
}

// ActiveBreakpoint declares which breakpoint is active for selector: the
// "before" and "after" declarations go into plain rule, "during" goes into
// rule wrapped with media query composed from req.
func (e *Engine) ActiveBreakpoint(req mq.Request, selector, inherited string) (*css.Stylesheet, error) {
	act := e.composer.Activity(req, inherited)
	prefix := e.opts.ActivePropertyPrefix

	sheet := &css.Stylesheet{}
	sheet.Append(css.NewRule(selector,
		css.Declaration{Property: prefix + "-before", Value: act.Before},
		css.Declaration{Property: prefix + "-after", Value: act.After},
	))

	during, err := e.MQ(req, (&css.Stylesheet{}).Append(css.NewRule(selector,
		css.Declaration{Property: prefix + "-during", Value: act.During},
	)))
	if err != nil {
		return nil, err
	}
	return sheet.Merge(during), nil
}

// TweakOptions select registries merged by Tweakpoints. Any of them may be
// nil.
type TweakOptions struct {
	Tweakpoints        *breakpoints.Registry // merged into both submaps
	LengthTweakpoints  *breakpoints.Registry // merged into lengths only
	FeatureTweakpoints *breakpoints.Registry // merged into features only
	Overwrite          bool                  // replace colliding breakpoints
}

// Tweakpoints returns engine over registry extended with tweakpoints.
// Receiver keeps its registry.
func (e *Engine) Tweakpoints(opts TweakOptions) *Engine {
	reg := e.composer.Registry().
		Extend(opts.Tweakpoints, opts.Overwrite).
		ExtendLengths(opts.LengthTweakpoints, opts.Overwrite).
		ExtendFeatures(opts.FeatureTweakpoints, opts.Overwrite)

	n := *e
	n.composer = e.composer.WithRegistry(reg)
	return &n
}
