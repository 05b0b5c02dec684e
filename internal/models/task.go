package model

import (
	"errors"
	"strings"
	"time"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
)

// Column names of the task sheet, in sheet order. The first column is the
// identifier.
const (
	ColumnID          = "id"
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnDate        = "date"
	ColumnStartTime   = "startTime"
	ColumnEndTime     = "endTime"
	ColumnPriority    = "priority"
	ColumnStatus      = "status"
)

// Columns is the header schema of the task sheet.
var Columns = []string{
	ColumnID,
	ColumnTitle,
	ColumnDescription,
	ColumnDate,
	ColumnStartTime,
	ColumnEndTime,
	ColumnPriority,
	ColumnStatus,
}

// Task is one row of the task sheet. Values are kept as stored so that a
// row with an unparseable date still round-trips.
type Task struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Date        string                 `json:"date"`
	StartTime   string                 `json:"startTime"`
	EndTime     string                 `json:"endTime"`
	Priority    constants.TaskPriority `json:"priority"`
	Status      constants.TaskStatus   `json:"status"`
}

var ErrInvalidDate = errors.New("invalid task date")

// dateLayouts are tried in order when reading the date cell. Layouts
// without a zone are interpreted in the caller's location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a date cell value.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders a date the way it is written to the sheet.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// DateIn returns the task date in loc.
func (t Task) DateIn(loc *time.Location) (time.Time, bool) {
	d, err := ParseDate(t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	if loc != nil {
		d = d.In(loc)
	}
	return d, true
}

// Field returns the cell value for a column name.
func (t Task) Field(column string) string {
	switch column {
	case ColumnID:
		return t.ID
	case ColumnTitle:
		return t.Title
	case ColumnDescription:
		return t.Description
	case ColumnDate:
		return t.Date
	case ColumnStartTime:
		return t.StartTime
	case ColumnEndTime:
		return t.EndTime
	case ColumnPriority:
		return string(t.Priority)
	case ColumnStatus:
		return string(t.Status)
	}
	return ""
}

// SetField assigns a cell value by column name. Unknown columns are ignored.
func (t *Task) SetField(column, value string) {
	switch column {
	case ColumnID:
		t.ID = value
	case ColumnTitle:
		t.Title = value
	case ColumnDescription:
		t.Description = value
	case ColumnDate:
		t.Date = value
	case ColumnStartTime:
		t.StartTime = value
	case ColumnEndTime:
		t.EndTime = value
	case ColumnPriority:
		t.Priority = constants.TaskPriority(value)
	case ColumnStatus:
		t.Status = constants.TaskStatus(value)
	}
}
