package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	dto "task-sheet-manager.com/task-sheet-manager/internal/data_models"
	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestRequestValidator_Create(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.CreateTaskRequest{Title: "x", Status: "In Progress", StartTime: "09:30"}))

	err := v.Validate(&dto.CreateTaskRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.EqualError(t, err, "title is required")

	err = v.Validate(&dto.CreateTaskRequest{Title: "x", Priority: "Urgent", EndTime: "9am"})
	assert.EqualError(t, err, "endTime must be a HH:MM time; priority must be one of High, Medium, Low")
}

func TestRequestValidator_Update(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.UpdateTaskRequest{}))
	assert.NoError(t, v.Validate(&dto.UpdateTaskRequest{Status: strPtr("Cancelled")}))

	err := v.Validate(&dto.UpdateTaskRequest{Status: strPtr("Blocked")})
	assert.EqualError(t, err, "status must be one of Pending, In Progress, Completed, Cancelled")
}

func TestRequestValidator_Query(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.ListTasksQuery{View: "week"}))
	assert.EqualError(t, v.Validate(&dto.ListTasksQuery{View: "year"}), "view must be one of list, day, week, month")
}
