package query

import (
	"time"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(locOrLocal(loc))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// Window is an inclusive time span. A zero bound is open.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Bounded() bool {
	return !w.Start.IsZero() || !w.End.IsZero()
}

// WeekWindow returns Monday 00:00 through Sunday end of day around anchor.
func WeekWindow(anchor time.Time, loc *time.Location) Window {
	day := StartOfDay(anchor, loc)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6), loc)}
}

func MonthWindow(anchor time.Time, loc *time.Location) Window {
	a := anchor.In(locOrLocal(loc))
	start := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, a.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

func DayWindow(anchor time.Time, loc *time.Location) Window {
	return Window{Start: StartOfDay(anchor, loc), End: EndOfDay(anchor, loc)}
}

// ViewWindow resolves a view mode to its window. The list view is
// unbounded.
func ViewWindow(view constants.ViewMode, anchor time.Time, loc *time.Location) Window {
	switch view {
	case constants.ViewDay:
		return DayWindow(anchor, loc)
	case constants.ViewWeek:
		return WeekWindow(anchor, loc)
	case constants.ViewMonth:
		return MonthWindow(anchor, loc)
	}
	return Window{}
}

// DaysInRange lists the midnights of every calendar day in w. Both bounds
// must be set.
func DaysInRange(w Window, loc *time.Location) []time.Time {
	if w.Start.IsZero() || w.End.IsZero() || w.Start.After(w.End) {
		return nil
	}
	var days []time.Time
	last := StartOfDay(w.End, loc)
	for d := StartOfDay(w.Start, loc); !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
