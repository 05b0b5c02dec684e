package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
	StatusCancelled  TaskStatus = "Cancelled"
)

// KnownStatuses lists the statuses the UI charts, in display order.
var KnownStatuses = []TaskStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func (s TaskStatus) Valid() bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

const (
	DefaultStatus   = StatusPending
	DefaultPriority = PriorityMedium
)

type ViewMode string

const (
	ViewList  ViewMode = "list"
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

type DeleteMode string

const (
	// DeleteRemove removes the row and shifts the rows below it up.
	DeleteRemove DeleteMode = "remove"
	// DeleteClear blanks the row in place, leaving a dead row.
	DeleteClear DeleteMode = "clear"
)
