package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%s failed: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	if got := run(t, "version"); got != "task-sheet-manager version 1.2.3\n" {
		t.Errorf("unexpected version output %q", got)
	}
}

func TestSheetCommands(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_TIMEZONE", "UTC")

	if got := run(t, "ensure-headers"); !strings.Contains(got, "header row rewritten") {
		t.Errorf("expected header written on first run, got %q", got)
	}
	if got := run(t, "ensure-headers"); !strings.Contains(got, "already up to date") {
		t.Errorf("expected no rewrite on second run, got %q", got)
	}
	if got := run(t, "compact"); !strings.Contains(got, "removed 0 dead rows") {
		t.Errorf("unexpected compact output %q", got)
	}
}
