package query

import (
	"strings"
	"time"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
	model "task-sheet-manager.com/task-sheet-manager/internal/models"
)

// FilterByDay keeps tasks dated on day's calendar day in loc.
func FilterByDay(tasks []model.Task, day time.Time, loc *time.Location) []model.Task {
	target := StartOfDay(day, loc)
	return keep(tasks, func(t model.Task) bool {
		d, ok := t.DateIn(locOrLocal(loc))
		return ok && StartOfDay(d, loc).Equal(target)
	})
}

// FilterByRange keeps tasks with start <= date <= end. A zero bound is
// open; with both zero every task is kept, dated or not. Dates without a
// zone are read in the location of the bounds.
func FilterByRange(tasks []model.Task, start, end time.Time) []model.Task {
	if start.IsZero() && end.IsZero() {
		return all(tasks)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return []model.Task{}
	}
	loc := start.Location()
	if start.IsZero() {
		loc = end.Location()
	}
	return keep(tasks, func(t model.Task) bool {
		d, ok := t.DateIn(loc)
		if !ok {
			return false
		}
		if !start.IsZero() && d.Before(start) {
			return false
		}
		if !end.IsZero() && d.After(end) {
			return false
		}
		return true
	})
}

func FilterByWindow(tasks []model.Task, w Window) []model.Task {
	return FilterByRange(tasks, w.Start, w.End)
}

// FilterByStatus keeps tasks whose status equals status exactly. An empty
// status keeps everything.
func FilterByStatus(tasks []model.Task, status constants.TaskStatus) []model.Task {
	if status == "" {
		return all(tasks)
	}
	return keep(tasks, func(t model.Task) bool { return t.Status == status })
}

func FilterByPriority(tasks []model.Task, priority constants.TaskPriority) []model.Task {
	if priority == "" {
		return all(tasks)
	}
	return keep(tasks, func(t model.Task) bool { return t.Priority == priority })
}

// Search keeps tasks whose title or description contains term, ignoring
// case.
func Search(tasks []model.Task, term string) []model.Task {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all(tasks)
	}
	return keep(tasks, func(t model.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term)
	})
}

func keep(tasks []model.Task, match func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

// all copies tasks into a non-nil slice.
func all(tasks []model.Task) []model.Task {
	return append(make([]model.Task, 0, len(tasks)), tasks...)
}
