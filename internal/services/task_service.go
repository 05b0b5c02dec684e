package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
	dto "task-sheet-manager.com/task-sheet-manager/internal/data_models"
	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
	model "task-sheet-manager.com/task-sheet-manager/internal/models"
	"task-sheet-manager.com/task-sheet-manager/internal/query"
	repository "task-sheet-manager.com/task-sheet-manager/internal/repositories"
)

type TaskService struct {
	repo       *repository.TaskRepository
	ids        *IDGenerator
	deleteMode constants.DeleteMode
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

type Options struct {
	DeleteMode constants.DeleteMode

	// Location is the zone calendar days are computed in.
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

func NewTaskService(repo *repository.TaskRepository, opts Options) *TaskService {
	if opts.DeleteMode == "" {
		opts.DeleteMode = constants.DeleteRemove
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &TaskService{
		repo:       repo,
		ids:        NewIDGenerator(opts.Now),
		deleteMode: opts.DeleteMode,
		loc:        opts.Location,
		now:        opts.Now,
		logger:     logging.WithComponent(opts.Logger, "task_service"),
	}
}

func (s *TaskService) Location() *time.Location {
	return s.loc
}

func (s *TaskService) DeleteMode() constants.DeleteMode {
	return s.deleteMode
}

// ListFilter narrows a task listing. Zero values do not filter.
type ListFilter struct {
	View constants.ViewMode
	// Anchor picks the day, week or month of a calendar view. Zero means
	// now.
	Anchor    time.Time
	StartDate time.Time
	EndDate   time.Time
	Status    constants.TaskStatus
	Priority  constants.TaskPriority
	Search    string
}

// ListTasks returns the live tasks matching filter in sheet order.
func (s *TaskService) ListTasks(ctx context.Context, filter ListFilter) ([]model.Task, error) {
	tasks, err := s.allTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.apply(tasks, filter), nil
}

func (s *TaskService) apply(tasks []model.Task, filter ListFilter) []model.Task {
	if filter.View == "" && !filter.Anchor.IsZero() {
		filter.View = constants.ViewDay
	}
	if filter.View != "" && filter.View != constants.ViewList {
		tasks = query.FilterByWindow(tasks, query.ViewWindow(filter.View, s.anchor(filter.Anchor), s.loc))
	}
	if !filter.StartDate.IsZero() || !filter.EndDate.IsZero() {
		tasks = query.FilterByRange(tasks, filter.StartDate, filter.EndDate)
	}
	tasks = query.FilterByStatus(tasks, filter.Status)
	tasks = query.FilterByPriority(tasks, filter.Priority)
	return query.Search(tasks, filter.Search)
}

func (s *TaskService) allTasks(ctx context.Context) ([]model.Task, error) {
	if _, err := s.repo.EnsureHeaders(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListRecords(ctx)
}

func (s *TaskService) anchor(t time.Time) time.Time {
	if t.IsZero() {
		return s.now().In(s.loc)
	}
	return t
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.EnsureHeaders(ctx); err != nil {
		return nil, err
	}
	task, _, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask validates req, fills defaults and appends the task. It
// returns the stored task with its new id.
func (s *TaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	task := model.Task{
		Title:       title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Priority:    constants.TaskPriority(req.Priority),
		Status:      constants.TaskStatus(req.Status),
	}
	if task.Date == "" {
		task.Date = model.FormatDate(s.now())
	}
	if task.Priority == "" {
		task.Priority = constants.DefaultPriority
	}
	if task.Status == "" {
		task.Status = constants.DefaultStatus
	}
	if err := s.validate(task); err != nil {
		return nil, err
	}

	if _, err := s.repo.EnsureHeaders(ctx); err != nil {
		return nil, err
	}

	task.ID = s.ids.Next()
	if err := s.repo.AppendRecord(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created", logging.TaskID(task.ID))
	return &task, nil
}

// UpdateTask merges req into the stored task. Absent fields keep their
// value and the id never changes. The row is located right before the
// write.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (*model.Task, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if err := s.validatePatch(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.EnsureHeaders(ctx); err != nil {
		return nil, err
	}
	task, loc, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	merge(&task, req)

	if err := s.repo.WriteRecordAt(ctx, loc.Position, task); err != nil {
		return nil, err
	}

	s.logger.Info("task updated", logging.TaskID(id), logging.Row(loc.Position))
	return &task, nil
}

func merge(task *model.Task, req dto.UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Date != nil {
		task.Date = *req.Date
	}
	if req.StartTime != nil {
		task.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		task.EndTime = *req.EndTime
	}
	if req.Priority != nil {
		task.Priority = constants.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		task.Status = constants.TaskStatus(*req.Status)
	}
}

// DeleteTask removes the task's row, or blanks it when the service runs
// in clear mode.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	id, err := checkID(id)
	if err != nil {
		return err
	}
	if _, err := s.repo.EnsureHeaders(ctx); err != nil {
		return err
	}
	_, loc, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}

	if s.deleteMode == constants.DeleteClear {
		err = s.repo.ClearRecordAt(ctx, loc.Position)
	} else {
		err = s.repo.DeleteRowAt(ctx, loc.Position)
	}
	if err != nil {
		return err
	}

	s.logger.Info("task deleted",
		logging.TaskID(id),
		logging.Row(loc.Position),
		slog.String("mode", string(s.deleteMode)),
	)
	return nil
}

// Stats summarizes the tasks matching filter.
func (s *TaskService) Stats(ctx context.Context, filter ListFilter) (query.Summary, error) {
	tasks, err := s.ListTasks(ctx, filter)
	if err != nil {
		return query.Summary{}, err
	}
	return query.Summarize(tasks), nil
}

// Chart is the aggregate behind the calendar charts. Hours is set for the
// day view, Days for week and month.
type Chart struct {
	View  constants.ViewMode `json:"view"`
	Start time.Time          `json:"start"`
	End   time.Time          `json:"end"`
	Hours []query.HourBucket `json:"hours,omitempty"`
	Days  []query.DayBucket  `json:"days,omitempty"`
}

// Chart buckets the tasks of the view's window around filter.Anchor. The
// list view charts the current week.
func (s *TaskService) Chart(ctx context.Context, filter ListFilter) (*Chart, error) {
	view := filter.View
	if view == "" || view == constants.ViewList {
		view = constants.ViewWeek
	}
	window := query.ViewWindow(view, s.anchor(filter.Anchor), s.loc)

	tasks, err := s.allTasks(ctx)
	if err != nil {
		return nil, err
	}
	filter.View = constants.ViewList
	tasks = query.FilterByWindow(s.apply(tasks, filter), window)

	chart := &Chart{View: view, Start: window.Start, End: window.End}
	if view == constants.ViewDay {
		chart.Hours = query.BucketByHour(tasks, s.loc)
	} else {
		chart.Days = query.BucketByDay(tasks, query.DaysInRange(window, s.loc), s.loc)
	}
	return chart, nil
}

// EnsureHeaders rewrites the header row if it differs from the schema.
func (s *TaskService) EnsureHeaders(ctx context.Context) (bool, error) {
	return s.repo.EnsureHeaders(ctx)
}

// Compact removes the dead rows left behind by clear-mode deletes.
func (s *TaskService) Compact(ctx context.Context) (int, error) {
	if _, err := s.repo.EnsureHeaders(ctx); err != nil {
		return 0, err
	}
	removed, err := s.repo.RemoveDeadRows(ctx)
	if err != nil {
		return removed, err
	}
	s.logger.Info("dead rows removed", slog.Int("count", removed))
	return removed, nil
}

func (s *TaskService) validate(task model.Task) error {
	if !task.Priority.Valid() {
		return apperrors.Validation("priority must be one of High, Medium, Low")
	}
	if !task.Status.Valid() {
		return apperrors.Validation("status must be one of Pending, In Progress, Completed, Cancelled")
	}
	if task.Date != "" {
		if _, err := model.ParseDate(task.Date, s.loc); err != nil {
			return apperrors.Validation("date must be an ISO-8601 date or timestamp")
		}
	}
	return nil
}

// validatePatch checks only the fields present in req, so rows holding
// values outside the known sets can still be edited.
func (s *TaskService) validatePatch(req dto.UpdateTaskRequest) error {
	patch := model.Task{Priority: constants.DefaultPriority, Status: constants.DefaultStatus}
	if req.Priority != nil {
		patch.Priority = constants.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		patch.Status = constants.TaskStatus(*req.Status)
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			return apperrors.Validation("date must not be empty")
		}
		patch.Date = *req.Date
	}
	return s.validate(patch)
}

// checkID returns id without surrounding whitespace.
func checkID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.ErrTaskIDRequired
	}
	if strings.ContainsAny(id, "\n\r\t") {
		return "", apperrors.ErrInvalidTaskID
	}
	return id, nil
}
