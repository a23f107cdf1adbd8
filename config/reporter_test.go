package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_Archive(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	input := filepath.Join(tmpDir, "input.css")
	if err := os.WriteFile(input, []byte(".a{color:red}"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	bps := filepath.Join(tmpDir, "breakpoints.yaml")
	if err := os.WriteFile(bps, []byte("lengths:\n  tiny: 320px\n"), 0644); err != nil {
		t.Fatalf("failed to write breakpoints: %v", err)
	}

	r.Store("input.css", input)
	r.StoreData("config.yaml", []byte("version: 1\n"))
	if err := r.StoreCopy("breakpoints.yaml", bps); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	// copy must not follow later changes
	if err := os.WriteFile(bps, []byte("lengths: {}\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite breakpoints: %v", err)
	}
	if err := r.StoreCopy("breakpoints.yaml", bps); err != nil {
		t.Fatalf("StoreCopy() again error: %v", err)
	}
	scratch := append([]string(nil), r.scratch...)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if len(files) != 5 {
		t.Errorf("archive has %d files, want 5: %v", len(files), files)
	}
	if files["input.css"] != ".a{color:red}" {
		t.Errorf("input.css = %q", files["input.css"])
	}
	if files["config.yaml"] != "version: 1\n" {
		t.Errorf("config.yaml = %q", files["config.yaml"])
	}
	if files["breakpoints.yaml"] != "lengths:\n  tiny: 320px\n" {
		t.Errorf("breakpoints.yaml = %q", files["breakpoints.yaml"])
	}
	if !strings.Contains(files["MANIFEST"], "\tinput.css\t") {
		t.Errorf("MANIFEST does not list input.css:\n%s", files["MANIFEST"])
	}

	for _, dir := range scratch {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", dir)
		}
	}
	if _, err := os.Stat(input); err != nil {
		t.Errorf("stored file should not be removed, got: %v", err)
	}
}

func TestReportStoreCopy_Missing(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("missing", filepath.Join(t.TempDir(), "missing.css")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReportStoreData_Duplicate(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate data")
		}
	}()
	r.StoreData("x", []byte("2"))
}
