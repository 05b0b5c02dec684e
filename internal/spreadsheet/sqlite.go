package spreadsheet

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// SheetRow is one emulated sheet row. Position is the 1-based row number.
type SheetRow struct {
	ID       uint     `gorm:"primaryKey"`
	Sheet    string   `gorm:"size:100;not null;index:idx_sheet_rows_position"`
	Position int      `gorm:"not null;index:idx_sheet_rows_position"`
	Cells    []string `gorm:"serializer:json"`
}

// SQLiteTable emulates one sheet on a gorm database. Values are always
// stored verbatim; USER_ENTERED parsing is not emulated.
type SQLiteTable struct {
	db    *gorm.DB
	sheet string
}

func NewSQLiteTable(db *gorm.DB, sheet string) (*SQLiteTable, error) {
	if err := db.AutoMigrate(&SheetRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sheet rows: %w", err)
	}
	return &SQLiteTable{db: db, sheet: sheet}, nil
}

func (s *SQLiteTable) SheetTitle() string {
	return s.sheet
}

func (s *SQLiteTable) scope(ctx context.Context, tx *gorm.DB) *gorm.DB {
	return tx.WithContext(ctx).Model(&SheetRow{}).Where("sheet = ?", s.sheet)
}

func (s *SQLiteTable) Get(ctx context.Context, r Range) ([][]string, error) {
	first := max(r.FirstRow, 1)

	query := s.scope(ctx, s.db).Where("position >= ?", first)
	if r.LastRow != 0 {
		query = query.Where("position <= ?", r.LastRow)
	}

	var stored []SheetRow
	if err := query.Order("position asc").Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	last := 0
	byPosition := make(map[int][]string, len(stored))
	for _, row := range stored {
		cells := trimCells(row.Cells, r.Width)
		if len(cells) == 0 {
			continue
		}
		byPosition[row.Position] = cells
		last = row.Position
	}
	if last == 0 {
		return [][]string{}, nil
	}

	rows := make([][]string, last-first+1)
	for i := range rows {
		if cells, ok := byPosition[first+i]; ok {
			rows[i] = cells
		} else {
			rows[i] = []string{}
		}
	}
	return rows, nil
}

func (s *SQLiteTable) Update(ctx context.Context, r Range, rows [][]string, _ ValueInput) error {
	first := max(r.FirstRow, 1)
	if r.LastRow != 0 && first+len(rows)-1 > r.LastRow {
		return fmt.Errorf("failed to update rows: %d rows do not fit range", len(rows))
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, cells := range rows {
			if err := s.writeRow(ctx, tx, first+i, cells, r.Width); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteTable) Append(ctx context.Context, r Range, rows [][]string, _ ValueInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		last, err := s.lastPopulated(ctx, tx)
		if err != nil {
			return err
		}
		next := max(last+1, r.FirstRow)
		for i, cells := range rows {
			if err := s.writeRow(ctx, tx, next+i, cells, r.Width); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteTable) Clear(ctx context.Context, r Range) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		query := s.scope(ctx, tx).Where("position >= ?", max(r.FirstRow, 1))
		if r.LastRow != 0 {
			query = query.Where("position <= ?", r.LastRow)
		}

		var stored []SheetRow
		if err := query.Find(&stored).Error; err != nil {
			return fmt.Errorf("failed to clear rows: %w", err)
		}
		for _, row := range stored {
			n := columnsOf(r.Width, len(row.Cells))
			cells := append([]string(nil), row.Cells...)
			for j := 0; j < n; j++ {
				cells[j] = ""
			}
			row.Cells = trimCells(cells, 0)
			if err := tx.WithContext(ctx).Save(&row).Error; err != nil {
				return fmt.Errorf("failed to clear row %d: %w", row.Position, err)
			}
		}
		return nil
	})
}

func (s *SQLiteTable) DeleteRows(ctx context.Context, start, end int) error {
	if start < 0 || end <= start {
		return fmt.Errorf("failed to delete rows: invalid span [%d, %d)", start, end)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.scope(ctx, tx).
			Where("position > ? AND position <= ?", start, end).
			Delete(&SheetRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete rows: %w", err)
		}
		if err := s.scope(ctx, tx).
			Where("position > ?", end).
			Update("position", gorm.Expr("position - ?", end-start)).Error; err != nil {
			return fmt.Errorf("failed to shift rows: %w", err)
		}
		return nil
	})
}

func (s *SQLiteTable) writeRow(ctx context.Context, tx *gorm.DB, position int, cells []string, width int) error {
	var row SheetRow
	err := s.scope(ctx, tx).Where("position = ?", position).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = SheetRow{Sheet: s.sheet, Position: position}
	case err != nil:
		return fmt.Errorf("failed to read row %d: %w", position, err)
	}

	n := columnsOf(width, len(cells))
	merged := append([]string(nil), row.Cells...)
	for len(merged) < n {
		merged = append(merged, "")
	}
	copy(merged[:n], cells[:n])
	row.Cells = trimCells(merged, 0)

	if err := tx.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to write row %d: %w", position, err)
	}
	return nil
}

func (s *SQLiteTable) lastPopulated(ctx context.Context, tx *gorm.DB) (int, error) {
	var stored []SheetRow
	if err := s.scope(ctx, tx).Order("position desc").Find(&stored).Error; err != nil {
		return 0, fmt.Errorf("failed to find last row: %w", err)
	}
	for _, row := range stored {
		if len(trimCells(row.Cells, 0)) > 0 {
			return row.Position, nil
		}
	}
	return 0, nil
}

// columnsOf caps n at width; width 0 means no cap.
func columnsOf(width, n int) int {
	if width > 0 && n > width {
		return width
	}
	return n
}

// trimCells cuts cells to width and drops trailing empty cells, the way
// the remote sheet returns rows.
func trimCells(cells []string, width int) []string {
	n := columnsOf(width, len(cells))
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return append([]string(nil), cells[:n]...)
}
