package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithOperation(logger, "tasks.create").Info("created", TaskID("42"))

	out := buf.String()
	if !strings.Contains(out, "operation=tasks.create") {
		t.Errorf("missing operation attribute: %s", out)
	}
	if !strings.Contains(out, "task_id=42") {
		t.Errorf("missing task id attribute: %s", out)
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError || attr.Value.String() != "boom" {
		t.Errorf("unexpected attr %v", attr)
	}

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("ok", Err(nil))
	if strings.Contains(buf.String(), "error=") {
		t.Errorf("nil error should be omitted: %s", buf.String())
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != StatusSuccess {
		t.Error("nil error is success")
	}
	if StatusOf(errors.New("x")) != StatusError {
		t.Error("non-nil error is error")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.FilePath = filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer closer.Close()

	logger.Info("hello")
}
