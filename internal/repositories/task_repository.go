package repository

import (
	"context"
	"log/slog"

	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
	"task-sheet-manager.com/task-sheet-manager/internal/instrumentation"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
	model "task-sheet-manager.com/task-sheet-manager/internal/models"
	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

// TaskRepository maps task records onto sheet rows. Nothing is cached:
// every call reads or writes the sheet.
type TaskRepository struct {
	table   spreadsheet.Table
	columns []string
	input   spreadsheet.ValueInput
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

func NewTaskRepository(table spreadsheet.Table, input spreadsheet.ValueInput, metrics *instrumentation.Metrics, logger *slog.Logger) *TaskRepository {
	if input == "" {
		input = spreadsheet.InputRaw
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskRepository{
		table:   table,
		columns: model.Columns,
		input:   input,
		metrics: metrics,
		logger:  logging.WithComponent(logger, "repository"),
	}
}

func (r *TaskRepository) width() int {
	return len(r.columns)
}

// EnsureHeaders reconciles the header row with the task schema.
func (r *TaskRepository) EnsureHeaders(ctx context.Context) (bool, error) {
	written, err := ReconcileHeaders(ctx, r.table, r.columns)
	if err != nil {
		return false, err
	}
	if written {
		r.metrics.RecordHeaderRewrite(ctx)
		r.logger.Info("sheet header rewritten", slog.Any("columns", r.columns))
	}
	return written, nil
}

// ReadRows returns every row of the sheet, header included.
func (r *TaskRepository) ReadRows(ctx context.Context) ([][]string, error) {
	rows, err := r.table.Get(ctx, spreadsheet.From(1, r.width()))
	if err != nil {
		return nil, apperrors.BackingStoreUnavailable("read rows", err)
	}
	return rows, nil
}

// ListRecords returns the live records in row order.
func (r *TaskRepository) ListRecords(ctx context.Context) ([]model.Task, error) {
	rows, err := r.ReadRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Task{}, nil
	}

	headers := rows[0]
	if !headersMatch(headers, r.columns) {
		return nil, apperrors.SchemaMismatch(r.columns, headers)
	}

	tasks := make([]model.Task, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if !isLive(row) {
			continue
		}
		tasks = append(tasks, recordFromRow(headers, row))
	}
	return tasks, nil
}

// Find resolves id to its current row. The location must not be reused
// after another mutation.
func (r *TaskRepository) Find(ctx context.Context, id string) (model.Task, Location, error) {
	rows, err := r.ReadRows(ctx)
	if err != nil {
		return model.Task{}, Location{}, err
	}

	loc := Locate(rows, id)
	if !loc.Found {
		return model.Task{}, Location{}, apperrors.ErrTaskNotFound
	}
	if !headersMatch(loc.Headers, r.columns) {
		return model.Task{}, Location{}, apperrors.SchemaMismatch(r.columns, loc.Headers)
	}

	return recordFromRow(loc.Headers, rows[loc.Position-1]), loc, nil
}

func (r *TaskRepository) AppendRecord(ctx context.Context, task model.Task) error {
	row := rowFromRecord(r.columns, task)
	if err := r.table.Append(ctx, spreadsheet.From(1, r.width()), [][]string{row}, r.input); err != nil {
		return apperrors.BackingStoreUnavailable("append row", err)
	}
	return nil
}

func (r *TaskRepository) WriteRecordAt(ctx context.Context, position int, task model.Task) error {
	row := rowFromRecord(r.columns, task)
	if err := r.table.Update(ctx, spreadsheet.Row(position, r.width()), [][]string{row}, r.input); err != nil {
		return apperrors.BackingStoreUnavailable("update row", err)
	}
	return nil
}

// ClearRecordAt blanks a row in place. The row stays and reads skip it.
func (r *TaskRepository) ClearRecordAt(ctx context.Context, position int) error {
	if err := r.table.Clear(ctx, spreadsheet.Row(position, r.width())); err != nil {
		return apperrors.BackingStoreUnavailable("clear row", err)
	}
	return nil
}

// DeleteRowAt removes a row; every row below moves up by one.
func (r *TaskRepository) DeleteRowAt(ctx context.Context, position int) error {
	if err := r.table.DeleteRows(ctx, position-1, position); err != nil {
		return apperrors.BackingStoreUnavailable("delete row", err)
	}
	return nil
}

// RemoveDeadRows deletes every data row whose identifier cell is empty
// and returns how many were removed.
func (r *TaskRepository) RemoveDeadRows(ctx context.Context) (int, error) {
	rows, err := r.ReadRows(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	// Bottom-up so earlier positions stay valid.
	for i := len(rows) - 1; i >= 1; i-- {
		if isLive(rows[i]) {
			continue
		}
		if err := r.DeleteRowAt(ctx, i+1); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func recordFromRow(headers, row []string) model.Task {
	var task model.Task
	for i, header := range headers {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		task.SetField(header, value)
	}
	return task
}

func rowFromRecord(columns []string, task model.Task) []string {
	row := make([]string, len(columns))
	for i, column := range columns {
		row[i] = task.Field(column)
	}
	return row
}
