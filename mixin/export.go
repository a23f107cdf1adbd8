package mixin

import (
	"go.uber.org/zap"

	"mqc/css"
	"mqc/mq"
)

// ExportLengths renders breakpoint snapshot into content property of
// selector (export selector from options when empty) so that scripts could
// read it. Snapshot of the first tier is placed at top level and every
// following tier overrides it under its own min-width query.
func (e *Engine) ExportLengths(selector string) (*css.Stylesheet, error) {
	if len(selector) == 0 {
		selector = e.opts.ExportSelector
	}
	reg := e.composer.Registry()

	tiers, err := reg.Tiers()
	if err != nil {
		return nil, err
	}

	sheet := &css.Stylesheet{}
	for i, tier := range tiers {
		snap, err := mq.NewSnapshot(reg, tier.Name)
		if err != nil {
			return nil, err
		}
		rule := (&css.Stylesheet{}).Append(css.NewRule(selector,
			css.Declaration{Property: "content", Value: css.QuoteString(snap.String(), '\'')},
			css.Declaration{Property: "display", Value: "none"},
		))
		if i == 0 {
			sheet.Merge(rule)
			continue
		}

		q, err := e.composer.Compose(mq.Request{From: mq.Named(tier.Name)})
		if err != nil {
			return nil, err
		}
		if q.IsEmpty() {
			e.log.Debug("Skipping zero length tier", zap.String("breakpoint", tier.Name))
			continue
		}
		sheet.Merge(rule.Wrap(q.String()))
	}
	return sheet, nil
}
