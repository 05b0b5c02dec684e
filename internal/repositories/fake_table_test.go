package repository

import (
	"context"

	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

// fakeTable is an in-memory sheet that counts calls.
type fakeTable struct {
	rows    [][]string
	err     error
	gets    int
	updates int
	appends int
	clears  int
	deletes int
}

func newFakeTable(rows ...[]string) *fakeTable {
	return &fakeTable{rows: rows}
}

func (f *fakeTable) Get(_ context.Context, r spreadsheet.Range) ([][]string, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	last := len(f.rows)
	if r.LastRow != 0 && r.LastRow < last {
		last = r.LastRow
	}
	var out [][]string
	for i := r.FirstRow - 1; i < last; i++ {
		row := f.rows[i]
		if r.Width > 0 && len(row) > r.Width {
			row = row[:r.Width]
		}
		out = append(out, append([]string(nil), row...))
	}
	return out, nil
}

func (f *fakeTable) Update(_ context.Context, r spreadsheet.Range, rows [][]string, _ spreadsheet.ValueInput) error {
	f.updates++
	if f.err != nil {
		return f.err
	}
	for i, row := range rows {
		pos := r.FirstRow - 1 + i
		for len(f.rows) <= pos {
			f.rows = append(f.rows, nil)
		}
		f.rows[pos] = append([]string(nil), row...)
	}
	return nil
}

func (f *fakeTable) Append(_ context.Context, _ spreadsheet.Range, rows [][]string, _ spreadsheet.ValueInput) error {
	f.appends++
	if f.err != nil {
		return f.err
	}
	for _, row := range rows {
		f.rows = append(f.rows, append([]string(nil), row...))
	}
	return nil
}

func (f *fakeTable) Clear(_ context.Context, r spreadsheet.Range) error {
	f.clears++
	if f.err != nil {
		return f.err
	}
	last := r.LastRow
	if last == 0 || last > len(f.rows) {
		last = len(f.rows)
	}
	for i := r.FirstRow - 1; i < last; i++ {
		f.rows[i] = []string{}
	}
	return nil
}

func (f *fakeTable) DeleteRows(_ context.Context, start, end int) error {
	f.deletes++
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows[:start], f.rows[end:]...)
	return nil
}
