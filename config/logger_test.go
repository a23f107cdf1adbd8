package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
)

func TestLoggingConfig_Prepare(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		conf := LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "none"},
			FileLogger:    LoggerConfig{Level: "none"},
		}
		log, err := conf.Prepare(nil)
		if err != nil {
			t.Fatalf("Prepare() error = %v", err)
		}
		if log.Core().Enabled(-1) {
			t.Error("debug level must be disabled")
		}
	})

	t.Run("file", func(t *testing.T) {
		t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

		dest := filepath.Join(t.TempDir(), "logs", "mqc.log")
		conf := LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "none"},
			FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			t.Fatal(err)
		}
		log, err := conf.Prepare(nil)
		if err != nil {
			t.Fatalf("Prepare() error = %v", err)
		}
		log.Debug("hidden message")
		log.Info("visible message")
		_ = log.Sync()

		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("log file was not created: %v", err)
		}
		if !strings.Contains(string(data), "visible message") {
			t.Errorf("log file does not contain info entry:\n%s", data)
		}
		if strings.Contains(string(data), "hidden message") {
			t.Errorf("log file contains debug entry:\n%s", data)
		}
	})
}

func TestConsoleLevel(t *testing.T) {
	for _, level := range []string{"normal", "debug"} {
		if _, ok := consoleLevel(level); !ok {
			t.Errorf("consoleLevel(%q) not enabled", level)
		}
	}
	if _, ok := consoleLevel("none"); ok {
		t.Error("consoleLevel(none) enabled")
	}
}
