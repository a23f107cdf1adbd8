package mq_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"mqc/breakpoints"
	"mqc/mq"
	"mqc/units"
)

func newComposer(t *testing.T, reg *breakpoints.Registry) *mq.Composer {
	t.Helper()
	log := zaptest.NewLogger(t)
	if reg == nil {
		reg = breakpoints.Default(log)
	}
	c, err := mq.NewComposer(log, reg, mq.DefaultOptions())
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	return c
}

func TestCompose(t *testing.T) {
	c := newComposer(t, nil)

	tests := []struct {
		name string
		req  mq.Request
		want string
	}{
		{"named from", mq.Request{From: mq.Named("tiny")}, "(min-width: 20em)"},
		{"raw from", mq.Request{From: mq.Raw("320px")}, "(min-width: 20em)"},
		{"em from", mq.Request{From: mq.Raw("40em")}, "(min-width: 40em)"},
		{"named until", mq.Request{Until: mq.Named("tiny")}, "(max-width: 19.99em)"},
		{"raw until", mq.Request{Until: mq.Raw("320px")}, "(max-width: 20em)"},
		{"from until", mq.Request{From: mq.Named("tiny"), Until: mq.Named("small")}, "(min-width: 20em) and (max-width: 29.99em)"},
		{"from misc", mq.Request{From: mq.Named("tiny"), Misc: []mq.Condition{mq.Named("landscape")}}, "(min-width: 20em) and (orientation: landscape)"},
		{"named feature", mq.Request{Misc: []mq.Condition{mq.Named("landscape")}}, "(orientation: landscape)"},
		{"multiple misc", mq.Request{Misc: []mq.Condition{mq.Named("landscape"), mq.Raw("(min-color: 8)")}}, "(orientation: landscape) and (min-color: 8)"},
		{"media type", mq.Request{MediaType: "print"}, "print"},
		{"media type first", mq.Request{MediaType: "screen", From: mq.Named("large")}, "screen and (min-width: 64em)"},
		{"default media type", mq.Request{MediaType: "all", From: mq.Named("medium")}, "(min-width: 37.5em)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.Compose(tt.req)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if got := q.String(); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
			if q.IsEmpty() {
				t.Error("IsEmpty() = true, want false")
			}
		})
	}
}

func TestCompose_Empty(t *testing.T) {
	c := newComposer(t, nil)

	for name, req := range map[string]mq.Request{
		"nothing":       {},
		"zero from":     {From: mq.Raw("0")},
		"default from":  {From: mq.Named("default")},
		"default until": {Until: mq.Named("default")},
		"zero px until": {Until: mq.Raw("0px")},
	} {
		t.Run(name, func(t *testing.T) {
			q, err := c.Compose(req)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if !q.IsEmpty() {
				t.Errorf("Compose() = %q, want empty query", q)
			}
		})
	}
}

func TestCompose_Errors(t *testing.T) {
	reg := breakpoints.Default(nil).SetLength("broken", "wide").SetLength("fluid", "50vw")
	c := newComposer(t, reg)

	t.Run("undefined length", func(t *testing.T) {
		_, err := c.Compose(mq.Request{From: mq.Named("bogus")})
		var ue *breakpoints.UndefinedError
		if !errors.As(err, &ue) {
			t.Fatalf("error = %v, want *UndefinedError", err)
		}
		if ue.Name != "bogus" {
			t.Errorf("Name = %q, want bogus", ue.Name)
		}
		if !strings.HasPrefix(err.Error(), "from: ") {
			t.Errorf("error = %q, want from: prefix", err)
		}
	})

	t.Run("feature used as length", func(t *testing.T) {
		_, err := c.Compose(mq.Request{Until: mq.Named("landscape")})
		var ue *breakpoints.UndefinedError
		if !errors.As(err, &ue) {
			t.Fatalf("error = %v, want *UndefinedError", err)
		}
		if !strings.HasPrefix(err.Error(), "until: ") {
			t.Errorf("error = %q, want until: prefix", err)
		}
	})

	t.Run("undefined feature", func(t *testing.T) {
		_, err := c.Compose(mq.Request{Misc: []mq.Condition{mq.Named("tiny")}})
		var ue *breakpoints.UndefinedError
		if !errors.As(err, &ue) {
			t.Fatalf("error = %v, want *UndefinedError", err)
		}
		if !strings.HasPrefix(err.Error(), "misc: ") {
			t.Errorf("error = %q, want misc: prefix", err)
		}
	})

	t.Run("string length", func(t *testing.T) {
		_, err := c.Compose(mq.Request{From: mq.Named("broken")})
		var te *breakpoints.TypeMismatchError
		if !errors.As(err, &te) {
			t.Fatalf("error = %v, want *TypeMismatchError", err)
		}
		if te.Key != "broken" {
			t.Errorf("Key = %q, want broken", te.Key)
		}
	})

	t.Run("viewport length", func(t *testing.T) {
		_, err := c.Compose(mq.Request{From: mq.Named("fluid")})
		var ce *units.ConversionError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want *ConversionError", err)
		}
	})

	t.Run("raw rem", func(t *testing.T) {
		_, err := c.Compose(mq.Request{Until: mq.Raw("10rem")})
		var ce *units.ConversionError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want *ConversionError", err)
		}
	})
}

func TestCompose_UnitlessWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c, err := mq.NewComposer(zap.New(core), breakpoints.Default(nil), mq.DefaultOptions())
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}

	q, err := c.Compose(mq.Request{From: mq.Raw("320")})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if q.String() != "(min-width: 20em)" {
		t.Errorf("Compose() = %q", q)
	}
	if logs.FilterMessage("Unitless value assumed to be in pixels").Len() != 1 {
		t.Errorf("expected unitless warning, got %v", logs.All())
	}

	opts := mq.DefaultOptions()
	opts.SuppressWarnings = true
	quiet, err := mq.NewComposer(zap.New(core), breakpoints.Default(nil), opts)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	if _, err := quiet.Compose(mq.Request{From: mq.Raw("320")}); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if logs.FilterMessage("Unitless value assumed to be in pixels").Len() != 1 {
		t.Error("warning was not suppressed")
	}
}

func TestCompose_Options(t *testing.T) {
	opts := mq.Options{
		BaseFontSize:     units.Px(20),
		Epsilon:          units.Px(1),
		DefaultMediaType: "screen",
	}
	c, err := mq.NewComposer(zaptest.NewLogger(t), breakpoints.Default(nil), opts)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}

	q, err := c.Compose(mq.Request{MediaType: "screen", From: mq.Named("tiny"), Until: mq.Named("small")})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if got, want := q.String(), "(min-width: 16em) and (max-width: 23.95em)"; got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestNewComposer_BadOptions(t *testing.T) {
	opts := mq.DefaultOptions()
	opts.BaseFontSize = units.Em(1)
	if _, err := mq.NewComposer(nil, nil, opts); err == nil {
		t.Error("expected error for em base font size")
	}

	opts = mq.DefaultOptions()
	opts.Epsilon = units.Length{Value: 1, Unit: "vw"}
	if _, err := mq.NewComposer(nil, nil, opts); err == nil {
		t.Error("expected error for vw epsilon")
	}
}

func TestWithRegistry(t *testing.T) {
	c := newComposer(t, nil)
	alt := c.WithRegistry(breakpoints.Default(nil).SetLength("phone", "400px"))

	if _, err := c.Compose(mq.Request{From: mq.Named("phone")}); err == nil {
		t.Error("original composer must not see new breakpoint")
	}
	q, err := alt.Compose(mq.Request{From: mq.Named("phone")})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if q.String() != "(min-width: 25em)" {
		t.Errorf("Compose() = %q", q)
	}
}

func TestQuery_And(t *testing.T) {
	outer := mq.Query{MediaType: "print", Conditions: []string{"(min-width: 20em)"}}
	inner := mq.Query{MediaType: "screen", Conditions: []string{"(orientation: landscape)"}}

	if got, want := outer.And(inner).String(), "print and (min-width: 20em) and (orientation: landscape)"; got != want {
		t.Errorf("And() = %q, want %q", got, want)
	}
	if got, want := (mq.Query{}).And(inner).String(), "screen and (orientation: landscape)"; got != want {
		t.Errorf("And() = %q, want %q", got, want)
	}
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in    string
		named bool
		raw   bool
	}{
		{"tiny", true, false},
		{"x-large", true, false},
		{"320px", false, true},
		{"0", false, true},
		{"  ", false, false},
	}
	for _, tt := range tests {
		c := mq.ParseBound(tt.in)
		if c.IsNamed() != tt.named || c.IsRaw() != tt.raw {
			t.Errorf("ParseBound(%q) = %v", tt.in, c)
		}
	}
}

func TestParseCondition(t *testing.T) {
	if c := mq.ParseCondition("landscape"); !c.IsNamed() || c.Text() != "landscape" {
		t.Errorf("ParseCondition(landscape) = %v", c)
	}
	if c := mq.ParseCondition(" (min-color: 8) "); !c.IsRaw() || c.Text() != "(min-color: 8)" {
		t.Errorf("ParseCondition(raw) = %v", c)
	}
	if c := mq.ParseCondition(""); !c.IsZero() {
		t.Errorf("ParseCondition(empty) = %v", c)
	}
}

func TestActivity(t *testing.T) {
	c := newComposer(t, nil)

	tests := []struct {
		name      string
		req       mq.Request
		inherited string
		want      mq.Activity
	}{
		{"named from", mq.Request{From: mq.Named("tiny")}, "", mq.Activity{Before: "default", During: "tiny", After: "default"}},
		{"raw from", mq.Request{From: mq.Raw("320px")}, "", mq.Activity{Before: "default", During: "default", After: "default"}},
		{"named until", mq.Request{Until: mq.Named("tiny")}, "", mq.Activity{Before: "default", During: "default", After: "default"}},
		{"inherited", mq.Request{Until: mq.Named("large")}, "small", mq.Activity{Before: "small", During: "small", After: "small"}},
		{"nested", mq.Request{From: mq.Named("large")}, "small", mq.Activity{Before: "small", During: "large", After: "small"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Activity(tt.req, tt.inherited); got != tt.want {
				t.Errorf("Activity() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	reg := breakpoints.New(nil).SetLength("b", "20px").SetLength("a", "10px")

	s, err := mq.NewSnapshot(reg, "a")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	if s.Active() != "a" {
		t.Errorf("Active() = %q", s.Active())
	}

	want := `{"values": {"default": "0", "a": "10px", "b": "20px"}, ` +
		`"from": {"default": {"from": "0", "active": true}, "a": {"from": "10px", "active": true}, "b": {"from": "20px", "active": false}}, ` +
		`"until": {"default": {"until": "0", "active": false}, "a": {"until": "10px", "active": false}, "b": {"until": "20px", "active": true}}, ` +
		`"from-until": {"default-until-a": {"from": "0", "until": "10px", "active": false}, "default-until-b": {"from": "0", "until": "20px", "active": true}, "a-until-b": {"from": "10px", "until": "20px", "active": true}}}`
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var decoded struct {
		Values    map[string]string `json:"values"`
		FromUntil map[string]struct {
			Active bool `json:"active"`
		} `json:"from-until"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.Values["b"] != "20px" || !decoded.FromUntil["a-until-b"].Active {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestSnapshot_SpecialCharacters(t *testing.T) {
	reg := breakpoints.New(nil).SetLength("<b&w>", "20px").SetLength(`q"t`, "30px")

	s, err := mq.NewSnapshot(reg, "<b&w>")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	got := s.String()
	for _, want := range []string{`"<b&w>": "20px"`, `"q\"t": "30px"`, `"<b&w>-until-q\"t"`} {
		if !strings.Contains(got, want) {
			t.Errorf("String() does not contain %s:\n%s", want, got)
		}
	}
	if strings.Contains(got, `\u003c`) || strings.HasSuffix(got, "\n") {
		t.Errorf("String() = %s", got)
	}
}

func TestSnapshot_Errors(t *testing.T) {
	if _, err := mq.NewSnapshot(breakpoints.Default(nil), "landscape"); err == nil {
		t.Error("expected error for feature breakpoint")
	}
	if _, err := mq.NewSnapshot(breakpoints.Default(nil).SetLength("bad", "auto"), "default"); err == nil {
		t.Error("expected error for unsortable registry")
	}
}
