package query

import (
	"time"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
	model "task-sheet-manager.com/task-sheet-manager/internal/models"
)

// StatusCounts counts tasks per status. Statuses outside the known set
// are counted under their literal value.
type StatusCounts map[constants.TaskStatus]int

func newStatusCounts() StatusCounts {
	c := make(StatusCounts, len(constants.KnownStatuses))
	for _, s := range constants.KnownStatuses {
		c[s] = 0
	}
	return c
}

type HourBucket struct {
	Hour   int          `json:"hour"`
	Label  string       `json:"name"`
	Counts StatusCounts `json:"counts"`
}

type DayBucket struct {
	Date   time.Time    `json:"date"`
	Label  string       `json:"name"`
	Counts StatusCounts `json:"counts"`
}

// BucketByHour counts tasks by local hour of day and status.
func BucketByHour(tasks []model.Task, loc *time.Location) []HourBucket {
	loc = locOrLocal(loc)
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h] = HourBucket{
			Hour:   h,
			Label:  time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04"),
			Counts: newStatusCounts(),
		}
	}

	for _, t := range tasks {
		d, ok := t.DateIn(loc)
		if !ok {
			continue
		}
		buckets[d.Hour()].Counts[t.Status]++
	}
	return buckets
}

// BucketByDay counts tasks per calendar day in days. A task lands in the
// first day it matches.
func BucketByDay(tasks []model.Task, days []time.Time, loc *time.Location) []DayBucket {
	buckets := make([]DayBucket, len(days))
	for i, day := range days {
		start := StartOfDay(day, loc)
		buckets[i] = DayBucket{
			Date:   start,
			Label:  start.Format("Mon 2"),
			Counts: newStatusCounts(),
		}
	}

	for _, t := range tasks {
		d, ok := t.DateIn(locOrLocal(loc))
		if !ok {
			continue
		}
		day := StartOfDay(d, loc)
		for i := range buckets {
			if buckets[i].Date.Equal(day) {
				buckets[i].Counts[t.Status]++
				break
			}
		}
	}
	return buckets
}

// Summary is the stats panel of the task list.
type Summary struct {
	Total          int                            `json:"totalTasks"`
	Completed      int                            `json:"completedTasks"`
	HighPriority   int                            `json:"highPriorityTasks"`
	CompletionRate int                            `json:"completionRate"`
	ByStatus       map[constants.TaskStatus]int   `json:"tasksByStatus"`
	ByPriority     map[constants.TaskPriority]int `json:"tasksByPriority"`
}

// Summarize counts tasks by status and priority. CompletionRate is a
// rounded percentage.
func Summarize(tasks []model.Task) Summary {
	s := Summary{
		Total:      len(tasks),
		ByStatus:   map[constants.TaskStatus]int{},
		ByPriority: map[constants.TaskPriority]int{},
	}
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		if t.Status == constants.StatusCompleted {
			s.Completed++
		}
		if t.Priority == constants.PriorityHigh {
			s.HighPriority++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = (s.Completed*100 + s.Total/2) / s.Total
	}
	return s
}
