package repository

import (
	"context"

	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

// ReconcileHeaders makes row 1 of table equal expected, overwriting it
// when its length or any cell differs. It reports whether it wrote.
func ReconcileHeaders(ctx context.Context, table spreadsheet.Table, expected []string) (bool, error) {
	r := spreadsheet.Row(1, len(expected))

	rows, err := table.Get(ctx, r)
	if err != nil {
		return false, apperrors.BackingStoreUnavailable("read header row", err)
	}

	var current []string
	if len(rows) > 0 {
		current = rows[0]
	}
	if headersMatch(current, expected) {
		return false, nil
	}

	if err := table.Update(ctx, r, [][]string{expected}, spreadsheet.InputRaw); err != nil {
		return false, apperrors.BackingStoreUnavailable("write header row", err)
	}
	return true, nil
}

func headersMatch(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range expected {
		if actual[i] != expected[i] {
			return false
		}
	}
	return true
}
