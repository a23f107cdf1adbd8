package emit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"mqc/breakpoints"
	"mqc/common"
	"mqc/config"
	"mqc/state"
)

func newContext(t *testing.T, ctx context.Context) (context.Context, *state.LocalEnv) {
	t.Helper()
	ctx = state.ContextWithEnv(ctx)
	env := state.EnvFromContext(ctx)
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return ctx, env
}

func newApp(stdin string, stdout *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:                      "mqc",
		Reader:                    strings.NewReader(stdin),
		Writer:                    stdout,
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			{Name: "query", Action: Query, Flags: RequestFlags(), DisableSliceFlagSeparator: true},
			{Name: "wrap", Action: Wrap, DisableSliceFlagSeparator: true, Flags: append(RequestFlags(), StyleFlag(),
				&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}})},
			{Name: "active", Action: Active, DisableSliceFlagSeparator: true, Flags: append(RequestFlags(), StyleFlag(),
				&cli.StringFlag{Name: "inherited"})},
			{Name: "export", Action: Export, Flags: []cli.Flag{StyleFlag(),
				&cli.StringFlag{Name: "selector"}, &cli.StringFlag{Name: "snapshot"}}},
			{Name: "breakpoints", Action: Breakpoints, Flags: []cli.Flag{
				&cli.BoolFlag{Name: "yaml"}, &cli.BoolFlag{Name: "tiers"}, &cli.BoolFlag{Name: "validate"}}},
			{Name: "dumpconfig", Action: DumpConfig, Flags: []cli.Flag{&cli.BoolFlag{Name: "default"}}},
		},
	}
}

func run(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(stdin, &out).Run(ctx, append([]string{"mqc"}, args...))
	return out.String(), err
}

func TestQuery(t *testing.T) {
	ctx, _ := newContext(t, t.Context())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, "\n"},
		{"from", []string{"--from", "tiny"}, "(min-width: 20em)\n"},
		{"range", []string{"--from", "small", "--until", "large"}, "(min-width: 30em) and (max-width: 63.99em)\n"},
		{"raw until", []string{"--until", "320px"}, "(max-width: 20em)\n"},
		{"media type", []string{"-t", "print", "--and", "landscape"}, "print and (orientation: landscape)\n"},
		{"repeated and", []string{"--and", "landscape", "--and", "(min-color: 8), (monochrome)"}, "(orientation: landscape) and (min-color: 8), (monochrome)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, ctx, "", append([]string{"query"}, tt.args...)...)
			if err != nil {
				t.Fatalf("query error = %v", err)
			}
			if got != tt.want {
				t.Errorf("query = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("undefined", func(t *testing.T) {
		var undefined *breakpoints.UndefinedError
		_, err := run(t, ctx, "", "query", "--from", "bogus")
		if err == nil || !errors.As(err, &undefined) {
			t.Errorf("query error = %v, want UndefinedError", err)
		}
	})
}

func TestWrap(t *testing.T) {
	ctx, _ := newContext(t, t.Context())

	t.Run("stdin", func(t *testing.T) {
		got, err := run(t, ctx, ".a{ color: red }", "wrap", "--from", "tiny", "--style", "compressed")
		if err != nil {
			t.Fatalf("wrap error = %v", err)
		}
		if want := "@media(min-width:20em){.a{color:red}}\n"; got != want {
			t.Errorf("wrap = %q, want %q", got, want)
		}
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "in.css")
		dst := filepath.Join(dir, "out.css")
		if err := os.WriteFile(src, []byte("@media print { .a { color: red } }"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := run(t, ctx, "", "wrap", "--until", "small", "--style", "compressed", src, dst); err != nil {
			t.Fatalf("wrap error = %v", err)
		}
		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if want := "@media print and (max-width:29.99em){.a{color:red}}\n"; string(got) != want {
			t.Errorf("wrap = %q, want %q", got, want)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		got, err := run(t, ctx, ".a{color:red}", "wrap", "--style", "compressed", "-")
		if err != nil {
			t.Fatalf("wrap error = %v", err)
		}
		if want := ".a{color:red}\n"; got != want {
			t.Errorf("wrap = %q, want %q", got, want)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := run(t, ctx, ".a{color:red}", "wrap", "--watch"); err == nil {
			t.Error("expected error watching standard input")
		}
		if _, err := run(t, ctx, ".a{color:red}", "wrap", "--style", "nested"); err == nil {
			t.Error("expected error for bad style")
		}
		if _, err := run(t, ctx, "", "wrap", filepath.Join(t.TempDir(), "missing.css")); err == nil {
			t.Error("expected error for missing source")
		}
	})
}

func waitFor(t *testing.T, path, want string, poke func()) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && string(data) == want {
			return
		}
		if poke != nil {
			poke()
		}
		time.Sleep(50 * time.Millisecond)
	}
	data, _ := os.ReadFile(path)
	t.Fatalf("%s = %q, want %q", filepath.Base(path), data, want)
}

func TestWrap_Watch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.css")
	dst := filepath.Join(dir, "out.css")
	bps := filepath.Join(dir, "bp.yaml")
	if err := os.WriteFile(src, []byte(".a{color:red}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bps, []byte("lengths:\n  phone: 320px\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	ctx, env := newContext(t, ctx)
	env.Cfg.Breakpoints.File = bps

	done := make(chan error, 1)
	go func() {
		_, err := run(t, ctx, "", "wrap", "--watch", "--from", "phone", "--style", "compressed", src, dst)
		done <- err
	}()

	waitFor(t, dst, "@media(min-width:20em){.a{color:red}}\n", nil)

	waitFor(t, dst, "@media(min-width:20em){.a{color:blue}}\n", func() {
		_ = os.WriteFile(src, []byte(".a{color:blue}"), 0644)
	})

	waitFor(t, dst, "@media(min-width:40em){.a{color:blue}}\n", func() {
		_ = os.WriteFile(bps, []byte("lengths:\n  phone: 640px\n"), 0644)
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("wrap --watch error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("wrap --watch did not stop on cancellation")
	}
}

func TestActive(t *testing.T) {
	ctx, _ := newContext(t, t.Context())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"named from", []string{"--from", "tiny"}, ".test{active-before:default;active-after:default}@media(min-width:20em){.test{active-during:tiny}}\n"},
		{"inherited", []string{"--until", "small", "--inherited", "tiny"}, ".test{active-before:tiny;active-after:tiny}@media(max-width:29.99em){.test{active-during:tiny}}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{"active", "--style", "compressed"}, tt.args...), ".test")
			got, err := run(t, ctx, "", args...)
			if err != nil {
				t.Fatalf("active error = %v", err)
			}
			if got != tt.want {
				t.Errorf("active = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := run(t, ctx, "", "active", "--from", "tiny"); err == nil {
		t.Error("expected error without selector")
	}
}

func TestExport(t *testing.T) {
	ctx, env := newContext(t, t.Context())

	want, err := os.ReadFile(filepath.Join("..", "mixin", "testdata", "export_default.css"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := run(t, ctx, "", "export", "--style", "compressed")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if got != string(want) {
		t.Errorf("export =\n%s\nwant\n%s", got, want)
	}

	env.Cfg.Output.Style = common.OutputStyleCompressed
	dst := filepath.Join(t.TempDir(), "export.css")
	if _, err := run(t, ctx, "", "export", "--selector", "body:before", dst); err != nil {
		t.Fatalf("export to file error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "body:before{content:'") {
		t.Errorf("export to file = %q", data)
	}
}

func TestExport_Snapshot(t *testing.T) {
	ctx, _ := newContext(t, t.Context())

	got, err := run(t, ctx, "", "export", "--snapshot", "small")
	if err != nil {
		t.Fatalf("export --snapshot error = %v", err)
	}

	var snap struct {
		Values map[string]string                     `json:"values"`
		From   map[string]map[string]any             `json:"from"`
		Until  map[string]map[string]any             `json:"until"`
		Range  map[string]map[string]json.RawMessage `json:"from-until"`
	}
	if err := json.Unmarshal([]byte(got), &snap); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v\n%s", err, got)
	}
	if snap.Values["small"] != "480px" {
		t.Errorf("values.small = %v", snap.Values["small"])
	}
	if snap.From["small"]["active"] != true || snap.From["medium"]["active"] != false {
		t.Errorf("from = %v", snap.From)
	}
	if snap.From["small"]["from"] != "480px" {
		t.Errorf("from.small.from = %v", snap.From["small"]["from"])
	}
	if snap.Until["medium"]["active"] != true || snap.Until["small"]["active"] != false {
		t.Errorf("until = %v", snap.Until)
	}
	if _, ok := snap.Range["small-until-large"]; !ok {
		t.Errorf("from-until = %v", snap.Range)
	}

	if _, err := run(t, ctx, "", "export", "--snapshot", "bogus"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestBreakpoints(t *testing.T) {
	ctx, env := newContext(t, t.Context())

	t.Run("dump", func(t *testing.T) {
		got, err := run(t, ctx, "", "breakpoints")
		if err != nil {
			t.Fatalf("breakpoints error = %v", err)
		}
		for _, s := range []string{"lengths:", "  tiny: 320px (number)", "features:", "landscape"} {
			if !strings.Contains(got, s) {
				t.Errorf("dump does not contain %q:\n%s", s, got)
			}
		}
	})

	t.Run("yaml", func(t *testing.T) {
		got, err := run(t, ctx, "", "breakpoints", "--yaml")
		if err != nil {
			t.Fatalf("breakpoints --yaml error = %v", err)
		}
		reg, err := breakpoints.Decode(nil, []byte(got), breakpoints.FormatYAML)
		if err != nil {
			t.Fatalf("yaml output cannot be decoded: %v\n%s", err, got)
		}
		if names := strings.Join(reg.LengthNames(), ","); names != "tiny,small,medium,large,x-large" {
			t.Errorf("LengthNames() = %s", names)
		}
	})

	t.Run("tiers", func(t *testing.T) {
		got, err := run(t, ctx, "", "breakpoints", "--tiers")
		if err != nil {
			t.Fatalf("breakpoints --tiers error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(got), "\n")
		if len(lines) != 6 {
			t.Fatalf("tiers = %q", got)
		}
		if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "default 0 0em" {
			t.Errorf("first tier = %q", lines[0])
		}
		if fields := strings.Fields(lines[5]); strings.Join(fields, " ") != "x-large 1280px 80em" {
			t.Errorf("last tier = %q", lines[5])
		}
	})

	t.Run("validate", func(t *testing.T) {
		if _, err := run(t, ctx, "", "breakpoints", "--validate"); err != nil {
			t.Errorf("breakpoints --validate error = %v", err)
		}

		bad := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(bad, []byte("lengths:\n  wide: huge\n"), 0644); err != nil {
			t.Fatal(err)
		}
		env.Cfg.Breakpoints.File = bad
		env.Reset()
		defer func() {
			env.Cfg.Breakpoints.File = ""
			env.Reset()
		}()
		if _, err := run(t, ctx, "", "breakpoints", "--validate"); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestDumpConfig(t *testing.T) {
	ctx, env := newContext(t, t.Context())
	env.Cfg.Output.ExportSelector = "body:before"

	def, err := run(t, ctx, "", "dumpconfig", "--default")
	if err != nil {
		t.Fatalf("dumpconfig --default error = %v", err)
	}
	if !strings.Contains(def, "head:after") {
		t.Errorf("default configuration does not contain export selector:\n%s", def)
	}

	dst := filepath.Join(t.TempDir(), "actual.yaml")
	if _, err := run(t, ctx, "", "dumpconfig", dst); err != nil {
		t.Fatalf("dumpconfig error = %v", err)
	}
	cfg, err := config.LoadConfiguration(dst)
	if err != nil {
		t.Fatalf("dumped configuration cannot be loaded: %v", err)
	}
	if cfg.Output.ExportSelector != "body:before" {
		t.Errorf("ExportSelector = %q, want body:before", cfg.Output.ExportSelector)
	}
}
