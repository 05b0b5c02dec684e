package spreadsheet

import (
	"context"
	"log/slog"
	"time"

	"task-sheet-manager.com/task-sheet-manager/internal/instrumentation"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
)

// InstrumentedTable records duration and outcome of every call on the
// wrapped Table.
type InstrumentedTable struct {
	next    Table
	backend string
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

func NewInstrumentedTable(next Table, backend string, metrics *instrumentation.Metrics, logger *slog.Logger) *InstrumentedTable {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstrumentedTable{
		next:    next,
		backend: backend,
		metrics: metrics,
		logger:  logging.WithComponent(logger, "spreadsheet"),
	}
}

func (t *InstrumentedTable) observe(ctx context.Context, op string, started time.Time, err error) {
	elapsed := time.Since(started)
	status := logging.StatusOf(err)
	t.metrics.RecordStoreOperation(ctx, t.backend, op, status, elapsed)

	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
	}
	t.logger.Log(ctx, level, "sheet call",
		logging.Operation(op),
		slog.String("backend", t.backend),
		logging.Status(status),
		logging.Duration(elapsed),
		logging.Err(err))
}

func (t *InstrumentedTable) Get(ctx context.Context, r Range) ([][]string, error) {
	started := time.Now()
	rows, err := t.next.Get(ctx, r)
	t.observe(ctx, "get", started, err)
	return rows, err
}

func (t *InstrumentedTable) Update(ctx context.Context, r Range, rows [][]string, input ValueInput) error {
	started := time.Now()
	err := t.next.Update(ctx, r, rows, input)
	t.observe(ctx, "update", started, err)
	return err
}

func (t *InstrumentedTable) Append(ctx context.Context, r Range, rows [][]string, input ValueInput) error {
	started := time.Now()
	err := t.next.Append(ctx, r, rows, input)
	t.observe(ctx, "append", started, err)
	return err
}

func (t *InstrumentedTable) Clear(ctx context.Context, r Range) error {
	started := time.Now()
	err := t.next.Clear(ctx, r)
	t.observe(ctx, "clear", started, err)
	return err
}

func (t *InstrumentedTable) DeleteRows(ctx context.Context, start, end int) error {
	started := time.Now()
	err := t.next.DeleteRows(ctx, start, end)
	t.observe(ctx, "delete_rows", started, err)
	return err
}
