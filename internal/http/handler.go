package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
	dto "task-sheet-manager.com/task-sheet-manager/internal/data_models"
	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
	model "task-sheet-manager.com/task-sheet-manager/internal/models"
	"task-sheet-manager.com/task-sheet-manager/internal/query"
	"task-sheet-manager.com/task-sheet-manager/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.CreateTaskResponse{
		Message: "Task created successfully",
		ID:      task.ID,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task updated successfully"})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter, err := h.listFilter(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) Stats(c echo.Context) error {
	filter, err := h.listFilter(c)
	if err != nil {
		return err
	}

	stats, err := h.taskService.Stats(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) Chart(c echo.Context) error {
	filter, err := h.listFilter(c)
	if err != nil {
		return err
	}

	chart, err := h.taskService.Chart(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chart)
}

func (h *Handler) listFilter(c echo.Context) (services.ListFilter, error) {
	var q dto.ListTasksQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return services.ListFilter{}, apperrors.Validation("invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return services.ListFilter{}, err
	}

	loc := h.taskService.Location()
	filter := services.ListFilter{
		View:     constants.ViewMode(q.View),
		Status:   constants.TaskStatus(q.Status),
		Priority: constants.TaskPriority(q.Priority),
		Search:   q.Search,
	}

	var err error
	if filter.Anchor, err = parseBound("date", q.Date, loc, false); err != nil {
		return services.ListFilter{}, err
	}
	if filter.StartDate, err = parseBound("startDate", q.StartDate, loc, false); err != nil {
		return services.ListFilter{}, err
	}
	if filter.EndDate, err = parseBound("endDate", q.EndDate, loc, true); err != nil {
		return services.ListFilter{}, err
	}
	return filter, nil
}

// parseBound parses an optional date query parameter. A bare end date
// covers its whole day.
func parseBound(name, value string, loc *time.Location, end bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := model.ParseDate(value, loc)
	if err != nil {
		return time.Time{}, apperrors.Validation(name + " must be an ISO-8601 date or timestamp")
	}
	if end && len(value) == len("2006-01-02") {
		t = query.EndOfDay(t, loc)
	}
	return t, nil
}
