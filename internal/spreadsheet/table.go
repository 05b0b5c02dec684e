package spreadsheet

import (
	"context"
	"fmt"
	"strings"
)

// ValueInput selects how written values are interpreted by the store.
type ValueInput string

const (
	// InputRaw stores values verbatim.
	InputRaw ValueInput = "RAW"
	// InputUserEntered lets the store parse numbers, dates and formulas.
	InputUserEntered ValueInput = "USER_ENTERED"
)

func ParseValueInput(s string) (ValueInput, error) {
	switch ValueInput(strings.ToUpper(s)) {
	case InputRaw:
		return InputRaw, nil
	case InputUserEntered:
		return InputUserEntered, nil
	}
	return "", fmt.Errorf("unknown value input option %q", s)
}

// Range is a block of rows. FirstRow and LastRow are 1-based and
// inclusive; LastRow 0 means through the last row of the sheet.
type Range struct {
	FirstRow int
	LastRow  int
	Width    int
}

func Rows(first, last, width int) Range {
	return Range{FirstRow: first, LastRow: last, Width: width}
}

func Row(row, width int) Range {
	return Rows(row, row, width)
}

func From(first, width int) Range {
	return Range{FirstRow: first, Width: width}
}

// A1 renders the range in A1 notation for the named sheet.
func (r Range) A1(sheet string) string {
	first := r.FirstRow
	if first < 1 {
		first = 1
	}
	last := ColumnLetter(r.Width)
	prefix := "'" + strings.ReplaceAll(sheet, "'", "''") + "'!"
	if r.LastRow == 0 {
		return fmt.Sprintf("%sA%d:%s", prefix, first, last)
	}
	return fmt.Sprintf("%sA%d:%s%d", prefix, first, last, r.LastRow)
}

// ColumnLetter returns the A1 column name for a 1-based column number.
func ColumnLetter(n int) string {
	if n < 1 {
		n = 1
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// Table is the remote tabular store. Rows come back as ordered cells;
// trailing empty cells may be omitted.
type Table interface {
	// Get returns the rows of r, starting at r.FirstRow.
	Get(ctx context.Context, r Range) ([][]string, error)
	// Update overwrites the cells of r with rows, starting at r.FirstRow.
	Update(ctx context.Context, r Range, rows [][]string, input ValueInput) error
	// Append adds rows after the last populated row of the sheet.
	Append(ctx context.Context, r Range, rows [][]string, input ValueInput) error
	// Clear blanks the cells of r without removing the rows.
	Clear(ctx context.Context, r Range) error
	// DeleteRows removes rows [start, end) by 0-based index and shifts
	// the rows below up.
	DeleteRows(ctx context.Context, start, end int) error
}
