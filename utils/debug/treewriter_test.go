package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "lengths:", want: "lengths:\n"},
		{name: "depth 2", depth: 2, format: "nested", want: "    nested\n"},
		{name: "with formatting", depth: 1, format: "%s: %d", args: []any{"count", 5}, want: "  count: 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "landscape", "(orientation: landscape)")
	tw.TextBlock(0, "empty", "")

	want := "  landscape: \"(orientation: landscape)\"\nempty: \n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}

func TestTreeWriter_Value(t *testing.T) {
	tw := NewTreeWriter()
	tw.Value(1, "tiny", "320px", "number")
	tw.Value(1, "bare", "10", "")

	want := "  tiny: 320px (number)\n  bare: 10\n"
	if got := tw.String(); got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"hello", `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{"line1\nline2", `"line1\nline2"`},
	}

	for _, tt := range tests {
		if got := encodeText(tt.input); got != tt.want {
			t.Errorf("encodeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
