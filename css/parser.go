package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Syntax errors are collected and
// returned together with whatever could be parsed.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	// Log parsing start with source identifier if provided
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	items, err := p.parseItems(parser, sheet, false)
	sheet.Items = items
	return sheet, err
}

// parseItems collects rules, media blocks and imports until the end of input
// or, when nested is set, until the end of enclosing at-rule block.
func (p *Parser) parseItems(parser *css.Parser, sheet *Stylesheet, nested bool) (items []StylesheetItem, err error) {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.HasParseError() {
				err = multierr.Append(err, parser.Err())
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
				continue
			}
			if perr := parser.Err(); perr != nil && !errors.Is(perr, io.EOF) {
				err = multierr.Append(err, perr)
			}
			return items, err

		case css.EndAtRuleGrammar:
			if nested {
				return items, err
			}

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			switch atRule {
			case "@media":
				query := normalizeTokens(parser.Values())
				inner, ierr := p.parseItems(parser, sheet, true)
				err = multierr.Append(err, ierr)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("items", len(inner)))
				items = append(items, NewMediaBlock(query, inner...))
			default:
				// Skip other @-rules with blocks
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			if atRule == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					items = append(items, StylesheetItem{Import: &url})
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			selector := normalizeSelector(parser.Values())
			decls, derr := p.parseDeclarations(parser)
			err = multierr.Append(err, derr)
			items = append(items, NewRule(selector, decls...))
		}
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			// url(something), the token data is the full url(...) string
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) (decls []Declaration, err error) {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return decls, err

		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return decls, err
			}
			err = multierr.Append(err, parser.Err())

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			decls = append(decls, declaration(string(data), values))

		case css.CustomPropertyGrammar:
			var value string
			if values := parser.Values(); len(values) > 0 {
				value = strings.TrimSpace(string(values[0].Data))
			}
			decls = append(decls, Declaration{Property: string(data), Value: value})

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			p.log.Debug("Skipping nested block", zap.ByteString("data", data))
			p.skipAtRuleBlock(parser)
		}
	}
}

// declaration converts CSS tokens to a Declaration, detaching trailing
// !important.
func declaration(property string, tokens []css.Token) Declaration {
	d := Declaration{Property: property}

	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end >= 2 &&
		tokens[end-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[end-1].Data), "important") &&
		tokens[end-2].TokenType == css.DelimToken && string(tokens[end-2].Data) == "!" {
		d.Important = true
		end -= 2
	}
	d.Value = normalizeTokens(tokens[:end])
	return d
}

// normalizeTokens builds canonical text from tokens: single spaces between
// tokens which were separated, a space after commas and colons.
func normalizeTokens(tokens []css.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
		if (t.TokenType == css.CommaToken || t.TokenType == css.ColonToken) && i+1 < len(tokens) && tokens[i+1].TokenType != css.WhitespaceToken {
			if t.TokenType == css.ColonToken && !insideParens(tokens[:i]) {
				continue
			}
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

// normalizeSelector builds canonical selector text: single spaces around
// combinators and after commas.
func normalizeSelector(tokens []css.Token) string {
	var sb strings.Builder
	space := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
			sb.WriteByte(' ')
		}
	}
	for _, t := range tokens {
		switch {
		case t.TokenType == css.WhitespaceToken:
			space()
		case isCombinator(t):
			space()
			sb.Write(t.Data)
			sb.WriteByte(' ')
		case t.TokenType == css.CommaToken:
			sb.Write(t.Data)
			sb.WriteByte(' ')
		default:
			sb.Write(t.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func isCombinator(t css.Token) bool {
	return t.TokenType == css.DelimToken && len(t.Data) == 1 && strings.IndexByte(">+~", t.Data[0]) >= 0
}

// insideParens reports whether tokens leave a plain parenthesized group
// open, as in media features. Function arguments do not count.
func insideParens(tokens []css.Token) bool {
	var stack []css.TokenType
	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken, css.FunctionToken:
			stack = append(stack, t.TokenType)
		case css.RightParenthesisToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return len(stack) > 0 && stack[len(stack)-1] == css.LeftParenthesisToken
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
