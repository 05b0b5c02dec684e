package spreadsheet

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type failingTable struct {
	Table
	err error
}

func (f failingTable) Get(context.Context, Range) ([][]string, error) {
	return nil, f.err
}

func TestInstrumentedTable_PassesThrough(t *testing.T) {
	inner := setupTestTable(t)
	table := NewInstrumentedTable(inner, "sqlite", nil, nil)
	ctx := context.Background()

	if err := table.Update(ctx, Row(1, 2), [][]string{{"id", "title"}}, InputRaw); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	rows, err := table.Get(ctx, From(1, 2))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "title" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestInstrumentedTable_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	upstream := errors.New("network down")

	table := NewInstrumentedTable(failingTable{err: upstream}, "sheets", nil, logger)
	_, err := table.Get(context.Background(), From(1, 8))

	if !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "operation=get") || !strings.Contains(out, "network down") {
		t.Errorf("expected failure to be logged, got %s", out)
	}
}
