package css

import (
	"slices"
	"strings"
)

// Declaration is a single property declaration.
type Declaration struct {
	Property  string
	Value     string // normalized value text without !important
	Important bool
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector     string        // selector list, ", " separated
	Declarations []Declaration // in source order, duplicates preserved
}

// GetProperty returns the value of the last declaration of a property.
func (r Rule) GetProperty(name string) (string, bool) {
	for _, d := range slices.Backward(r.Declarations) {
		if d.Property == name {
			return d.Value, true
		}
	}
	return "", false
}

// Selectors returns selector list split into individual selectors.
func (r Rule) Selectors() []string {
	return splitTopLevel(r.Selector, ',')
}

// StylesheetItem is a single item in a stylesheet or media block.
// Exactly one of Rule, MediaBlock, or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + declarations)
	MediaBlock *MediaBlock // A @media block containing nested items
	Import     *string     // An @import URL
}

// MediaBlock represents a @media block with its query and nested items.
type MediaBlock struct {
	Query string // media query list, canonical form "print and (min-width: 20em)"
	Items []StylesheetItem
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// NewRule creates stylesheet item with single rule.
func NewRule(selector string, decls ...Declaration) StylesheetItem {
	return StylesheetItem{Rule: &Rule{Selector: selector, Declarations: decls}}
}

// NewMediaBlock creates stylesheet item with media block.
func NewMediaBlock(query string, items ...StylesheetItem) StylesheetItem {
	return StylesheetItem{MediaBlock: &MediaBlock{Query: query, Items: items}}
}

// Append adds items to the end of the stylesheet.
func (s *Stylesheet) Append(items ...StylesheetItem) *Stylesheet {
	s.Items = append(s.Items, items...)
	return s
}

// Merge appends items and warnings of other stylesheet.
func (s *Stylesheet) Merge(other *Stylesheet) *Stylesheet {
	if other == nil {
		return s
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
	return s
}

// IsEmpty returns true if stylesheet renders to nothing.
func (s *Stylesheet) IsEmpty() bool {
	return !slices.ContainsFunc(s.Items, func(item StylesheetItem) bool { return !item.isEmpty() })
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// MediaBlocks returns all top-level media blocks.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}

// Wrap returns new stylesheet with content placed under media query.
// Consecutive rules share one block, nested media blocks are moved out and
// their queries are joined with query, imports stay at top level. Empty
// query returns a copy of the stylesheet.
func (s *Stylesheet) Wrap(query string) *Stylesheet {
	out := &Stylesheet{Warnings: slices.Clone(s.Warnings)}
	if len(strings.TrimSpace(query)) == 0 {
		out.Items = slices.Clone(s.Items)
		return out
	}
	out.Items = wrapItems(query, s.Items)
	return out
}

func wrapItems(query string, items []StylesheetItem) []StylesheetItem {
	var (
		out     []StylesheetItem
		current *MediaBlock
	)
	for _, item := range items {
		switch {
		case item.Rule != nil:
			if current == nil {
				current = &MediaBlock{Query: query}
				out = append(out, StylesheetItem{MediaBlock: current})
			}
			current.Items = append(current.Items, item)
		case item.MediaBlock != nil:
			current = nil
			out = append(out, wrapItems(JoinQueries(query, item.MediaBlock.Query), item.MediaBlock.Items)...)
		case item.Import != nil:
			current = nil
			out = append(out, item)
		}
	}
	return out
}

func (item StylesheetItem) isEmpty() bool {
	switch {
	case item.Rule != nil:
		return len(item.Rule.Declarations) == 0
	case item.MediaBlock != nil:
		return !slices.ContainsFunc(item.MediaBlock.Items, func(i StylesheetItem) bool { return !i.isEmpty() })
	default:
		return item.Import == nil
	}
}

// JoinQueries combines outer and nested media queries into one. Media type
// of the outer query wins, conditions of both are kept in order. Query
// lists (comma separated) are combined pairwise.
func JoinQueries(outer, inner string) string {
	outer, inner = strings.TrimSpace(outer), strings.TrimSpace(inner)
	switch {
	case len(outer) == 0:
		return inner
	case len(inner) == 0:
		return outer
	}

	var joined []string
	for _, o := range splitTopLevel(outer, ',') {
		for _, i := range splitTopLevel(inner, ',') {
			joined = append(joined, joinQuery(o, i))
		}
	}
	return strings.Join(joined, ", ")
}

func joinQuery(outer, inner string) string {
	oType, oConds := splitQuery(outer)
	iType, iConds := splitQuery(inner)
	if len(oType) == 0 {
		oType = iType
	}
	parts := make([]string, 0, len(oConds)+len(iConds)+1)
	if len(oType) > 0 {
		parts = append(parts, oType)
	}
	parts = append(parts, oConds...)
	parts = append(parts, iConds...)
	return strings.Join(parts, " and ")
}

// splitQuery separates leading media type (with optional only/not) from
// conditions.
func splitQuery(q string) (string, []string) {
	parts := splitTopLevel(q, 0)
	if len(parts) > 0 && !strings.HasPrefix(parts[0], "(") {
		return parts[0], parts[1:]
	}
	return "", parts
}

// splitTopLevel splits s outside of parentheses and quotes. With zero sep it
// splits on " and ".
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	flush := func(end int) {
		if p := strings.TrimSpace(s[start:end]); len(p) > 0 {
			parts = append(parts, p)
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case depth == 0 && sep != 0 && c == sep:
			flush(i)
			start = i + 1
		case depth == 0 && sep == 0 && c == ' ' && strings.HasPrefix(s[i:], " and "):
			flush(i)
			start = i + len(" and ")
			i += len(" and ") - 1
		}
	}
	flush(len(s))
	return parts
}
