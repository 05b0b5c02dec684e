package dto

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description" validate:"max=5000"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime" validate:"omitempty,clock"`
	EndTime     string `json:"endTime" validate:"omitempty,clock"`
	Priority    string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Status      string `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed Cancelled"`
}

// UpdateTaskRequest is the body of PUT and PATCH /api/tasks/:id. Absent
// fields keep their stored value.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=500"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime" validate:"omitempty,clock"`
	EndTime     *string `json:"endTime" validate:"omitempty,clock"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Status      *string `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed Cancelled"`
}

// ListTasksQuery is the query string of GET /api/tasks and its stats and
// chart siblings.
type ListTasksQuery struct {
	View      string `query:"view" validate:"omitempty,oneof=list day week month"`
	Date      string `query:"date"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Status    string `query:"status"`
	Priority  string `query:"priority" validate:"omitempty,oneof=High Medium Low"`
	Search    string `query:"search"`
}

type CreateTaskResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
