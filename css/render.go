package css

import (
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"mqc/common"
)

// QuoteString returns s as CSS string literal using quote character q.
func QuoteString(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// renderer accumulates written bytes and the first error.
type renderer struct {
	w     io.Writer
	style common.OutputStyle
	n     int64
	err   error
}

func (r *renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	n, err := fmt.Fprintf(r.w, format, args...)
	r.n += int64(n)
	r.err = err
}

// Render writes stylesheet to w in requested output style. Rules without
// declarations and media blocks without content are not written.
func (s *Stylesheet) Render(w io.Writer, style common.OutputStyle) error {
	_, err := s.render(w, style)
	return err
}

// WriteTo writes the stylesheet to w in expanded style, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return s.render(w, common.OutputStyleExpanded)
}

// String returns the CSS text of the stylesheet in expanded style.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func (s *Stylesheet) render(w io.Writer, style common.OutputStyle) (int64, error) {
	r := &renderer{w: w, style: style}
	first := true
	for _, item := range s.Items {
		if item.isEmpty() {
			continue
		}
		// Add blank line between items in expanded style
		if !first && !style.Compressed() {
			r.printf("\n")
		}
		first = false
		r.item(item, 0)
	}
	if !first && style.Compressed() {
		r.printf("\n")
	}
	return r.n, r.err
}

func (r *renderer) item(item StylesheetItem, depth int) {
	switch {
	case item.Import != nil:
		r.importURL(*item.Import, depth)
	case item.MediaBlock != nil:
		r.mediaBlock(item.MediaBlock, depth)
	case item.Rule != nil:
		r.rule(item.Rule, depth)
	}
}

func (r *renderer) importURL(url string, depth int) {
	if r.style.Compressed() {
		r.printf("@import %s;", QuoteString(url, '"'))
		return
	}
	r.printf("%s@import %s;\n", indent(depth), QuoteString(url, '"'))
}

func (r *renderer) rule(rule *Rule, depth int) {
	if r.style.Compressed() {
		r.printf("%s{", compress(rule.Selector, true))
		for i, d := range rule.Declarations {
			if i > 0 {
				r.printf(";")
			}
			r.printf("%s:%s", d.Property, compress(d.Value, false))
			if d.Important {
				r.printf("!important")
			}
		}
		r.printf("}")
		return
	}

	pad := indent(depth)
	r.printf("%s%s {\n", pad, rule.Selector)
	for _, d := range rule.Declarations {
		important := ""
		if d.Important {
			important = " !important"
		}
		r.printf("%s  %s: %s%s;\n", pad, d.Property, d.Value, important)
	}
	r.printf("%s}\n", pad)
}

func (r *renderer) mediaBlock(mb *MediaBlock, depth int) {
	if r.style.Compressed() {
		query := compress(mb.Query, true)
		if strings.HasPrefix(query, "(") {
			r.printf("@media%s{", query)
		} else {
			r.printf("@media %s{", query)
		}
		for _, item := range mb.Items {
			if !item.isEmpty() {
				r.item(item, depth+1)
			}
		}
		r.printf("}")
		return
	}

	pad := indent(depth)
	r.printf("%s@media %s {\n", pad, mb.Query)
	for _, item := range mb.Items {
		if !item.isEmpty() {
			r.item(item, depth+1)
		}
	}
	r.printf("%s}\n", pad)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// compress drops optional whitespace: after commas everywhere, after colons
// and around combinators in selectors and media queries.
func compress(s string, structural bool) string {
	if !strings.ContainsAny(s, " \t\n") {
		return s
	}

	var (
		sb      strings.Builder
		prev    css.TokenType = css.ErrorToken
		prevTok []byte
		pending bool
	)
	l := css.NewLexer(parse.NewInputString(s))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken {
			pending = true
			continue
		}
		if pending && sb.Len() > 0 {
			drop := prev == css.CommaToken
			if structural {
				drop = drop || prev == css.ColonToken && tt != css.ColonToken ||
					isCombinator(css.Token{TokenType: prev, Data: prevTok}) ||
					isCombinator(css.Token{TokenType: tt, Data: data})
			}
			if !drop {
				sb.WriteByte(' ')
			}
		}
		pending = false
		sb.Write(data)
		prev, prevTok = tt, append(prevTok[:0], data...)
	}
	return sb.String()
}
