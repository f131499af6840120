package infrastructure

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"log/slog"

	"yardcli/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for input, want := range cases {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	if err != nil {
		t.Fatalf("InitializeLogger: %v", err)
	}

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "calendar loaded", slog.Int("days", 5))

	if err := CloseLogFile(); err != nil {
		t.Fatalf("CloseLogFile: %v", err)
	}

	f, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer f.Close()

	var found bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		if entry["msg"] != "calendar loaded" {
			continue
		}
		found = true
		if entry["trace_id"] != "trace-123" {
			t.Errorf("trace_id = %v, want trace-123", entry["trace_id"])
		}
		if entry["days"] != float64(5) {
			t.Errorf("days = %v, want 5", entry["days"])
		}
	}
	if !found {
		t.Error("expected log entry was not written to file")
	}
}

func TestInitializeLogger_OnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "stdout"})
	if err != nil {
		t.Fatalf("InitializeLogger: %v", err)
	}

	second, err := InitializeLogger(config.LoggingConfig{Level: "error", Output: "stdout"})
	if err != nil {
		t.Fatalf("second InitializeLogger: %v", err)
	}

	if first != second {
		t.Error("InitializeLogger should return the same instance on repeat calls")
	}
	if GetLogger() != first {
		t.Error("GetLogger should return the initialized instance")
	}
}

func TestGetLogger_Uninitialized(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	if GetLogger() == nil {
		t.Fatal("GetLogger must never return nil")
	}
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	if GetTraceID(ctx) != "" {
		t.Error("empty context should have no trace ID")
	}

	ctx = WithTraceID(ctx, "abc")
	if got := GetTraceID(ctx); got != "abc" {
		t.Errorf("GetTraceID = %q, want abc", got)
	}

	// EnsureTraceID keeps an existing ID and fills in a missing one.
	if GetTraceID(EnsureTraceID(ctx)) != "abc" {
		t.Error("EnsureTraceID replaced an existing trace ID")
	}
	if GetTraceID(EnsureTraceID(context.Background())) == "" {
		t.Error("EnsureTraceID did not generate a trace ID")
	}
}

func TestLoggerWithContext(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	base := GetLogger()
	if LoggerWithContext(context.Background()) != base {
		t.Error("context without trace ID should return the base logger")
	}

	ctx := WithTraceID(context.Background(), "trace-xyz")
	if LoggerWithContext(ctx) == base {
		t.Error("context with trace ID should return an enriched logger")
	}
}

func TestLoggerHelpers(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if WithComponent(logger, "reconcile") == logger {
		t.Error("WithComponent should return a derived logger")
	}
}
