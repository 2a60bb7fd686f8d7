package services

import (
	"context"
	"errors"
	"time"

	"gtd/internal/gtd"
	"gtd/internal/models"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrColumnNotFound  = errors.New("column not found in project")
	ErrTitleRequired   = errors.New("task title required")
	ErrNameRequired    = errors.New("project name required")

	// Rejected preconditions surfaced by the core rules.
	ErrTimerNotRunning    = gtd.ErrTimerNotRunning
	ErrTaskNotCompletable = gtd.ErrNotCompletable
)

type ProjectService interface {
	// CreateProject creates a project; when params carry no columns the
	// default kanban set is installed.
	CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error)

	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]*models.Project, error)

	// UpdateProject applies a partial update. Replacing the column list
	// detaches tasks that referenced a removed column.
	UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)

	// DeleteProject removes the project and detaches its tasks: their
	// projectId and columnId become null, the rows survive.
	DeleteProject(ctx context.Context, id string) error
}

type TaskService interface {
	// CreateTask appends the task to the end of its (project, column)
	// bucket. It returns ErrTitleRequired for an empty title and
	// ErrColumnNotFound when columnId does not belong to projectId.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error)

	// UpdateTask applies a partial update. A patch that relocates the task
	// to another bucket without an explicit position appends it there; the
	// source bucket is left as-is, readers order by position and tolerate
	// the gap.
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)

	DeleteTask(ctx context.Context, id string) error

	// CompleteTask moves the task into its project's countsAsDone column,
	// stamps completedAt, and clears inToday. It returns
	// ErrTaskNotCompletable for inbox tasks and for projects with no done
	// column.
	CompleteTask(ctx context.Context, id string) (*models.Task, error)
}

type TimerService interface {
	// Start opens a timer for the task, first closing (and persisting) any
	// running interval. Timers never overlap.
	Start(ctx context.Context, taskID string) (*models.ActiveTimer, error)

	// Stop closes the running timer and persists its TimeEntry. It returns
	// ErrTimerNotRunning when idle.
	Stop(ctx context.Context) (*models.TimeEntry, error)

	// Active returns the open timer, or nil.
	Active() *models.ActiveTimer
}

type TimeEntryService interface {
	CreateEntry(ctx context.Context, params CreateTimeEntryParams) (*models.TimeEntry, error)
	ListEntries(ctx context.Context, filter TimeEntryFilter) ([]*models.TimeEntry, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
}

type CreateProjectParams struct {
	Name        string
	Description *string
	Color       string
	Icon        *string
	Columns     []models.Column
	DefaultView string
}

type CreateTaskParams struct {
	Title         string
	Description   *string
	ProjectID     *string
	ColumnID      *string
	DueDate       *string
	ScheduledDate *string
	EnergyLevel   *string
	ContextTags   []string
	TimeEstimate  *int
	InToday       bool
}

type TaskFilter struct {
	ProjectID       *string // filter to one project
	InboxOnly       bool    // tasks with no project
	InToday         bool
	IncludeArchived bool
}

type CreateTimeEntryParams struct {
	TaskID    *string
	ProjectID *string
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64
	Notes     *string
}

type TimeEntryFilter struct {
	TaskID    *string
	ProjectID *string
	Limit     int
}
