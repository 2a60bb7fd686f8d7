package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gtd/internal/gtd"
	"gtd/internal/models"
	"gtd/internal/storage/sqlite"
)

type taskServiceImpl struct {
	logger   zerolog.Logger
	db       *sqlite.DB
	projects ProjectService
}

func NewTaskService(logger zerolog.Logger, db *sqlite.DB, projects ProjectService) TaskService {
	return &taskServiceImpl{
		logger:   logger,
		db:       db,
		projects: projects,
	}
}

const selectTaskColumns = `
SELECT id,
       title,
       description,
       project_id,
       column_id,
       due_date,
       scheduled_date,
       energy_level,
       context_tags,
       time_estimate,
       position,
       in_today,
       archived,
       completed_at,
       created_at,
       updated_at
FROM tasks
`

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		s.logger.Warn().Msg("rejected task with empty title")
		return nil, ErrTitleRequired
	}

	columnID := params.ColumnID
	if params.ProjectID == nil {
		// Inbox tasks carry no column.
		columnID = nil
	} else if err := s.checkColumnRef(ctx, params.ProjectID, columnID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:            uuid.NewString(),
		Title:         params.Title,
		Description:   params.Description,
		ProjectID:     params.ProjectID,
		ColumnID:      columnID,
		DueDate:       params.DueDate,
		ScheduledDate: params.ScheduledDate,
		EnergyLevel:   params.EnergyLevel,
		ContextTags:   params.ContextTags,
		TimeEstimate:  params.TimeEstimate,
		InToday:       params.InToday,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if task.ContextTags == nil {
		task.ContextTags = []string{}
	}

	position, err := s.nextPosition(ctx, task.ProjectID, task.ColumnID)
	if err != nil {
		return nil, err
	}
	task.Position = position

	tagsJSON, err := json.Marshal(task.ContextTags)
	if err != nil {
		return nil, err
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   project_id,
                   column_id,
                   due_date,
                   scheduled_date,
                   energy_level,
                   context_tags,
                   time_estimate,
                   position,
                   in_today,
                   archived,
                   completed_at,
                   created_at,
                   updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.ProjectID,
		task.ColumnID,
		task.DueDate,
		task.ScheduledDate,
		task.EnergyLevel,
		string(tagsJSON),
		task.TimeEstimate,
		task.Position,
		task.InToday,
		task.Archived,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Int("position", task.Position).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, selectTaskColumns+"WHERE id = ?", id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error) {
	query := selectTaskColumns + "WHERE 1=1"
	args := make([]any, 0, 2)

	if filter.InboxOnly {
		query += " AND project_id IS NULL"
	} else if filter.ProjectID != nil {
		query += " AND project_id = ?"
		args = append(args, *filter.ProjectID)
	}
	if filter.InToday {
		query += " AND in_today = 1"
	}
	if !filter.IncludeArchived {
		query += " AND archived = 0"
	}
	query += " ORDER BY position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := patch.MovesBucket()
	patch.Apply(task, time.Now())

	if task.ProjectID != nil {
		if err = s.checkColumnRef(ctx, task.ProjectID, task.ColumnID); err != nil {
			return nil, err
		}
	}

	// Relocating without an explicit position appends to the destination
	// bucket. The source bucket keeps its gap; readers order by position
	// and never assume density.
	if moved && patch.Position == nil {
		position, err := s.nextPosition(ctx, task.ProjectID, task.ColumnID)
		if err != nil {
			return nil, err
		}
		task.Position = position
	}

	if err = s.writeTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	var project *models.Project
	if task.ProjectID != nil {
		project, err = s.projects.GetProject(ctx, *task.ProjectID)
		if err != nil && !errors.Is(err, ErrProjectNotFound) {
			return nil, err
		}
	}

	completed, err := gtd.Complete(*task, project, time.Now())
	if err != nil {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not completable")
		return nil, err
	}

	if err = s.writeTask(ctx, &completed); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", completed.ID).
		Str("column_id", *completed.ColumnID).
		Msg("completed task")
	return &completed, nil
}

// nextPosition is the append rule: one past the bucket's max position. The
// IS comparison makes the inbox (NULL, NULL) bucket work with the same
// query.
func (s *taskServiceImpl) nextPosition(ctx context.Context, projectID, columnID *string) (int, error) {
	const nextPositionQuery = `
SELECT COALESCE(MAX(position), -1) + 1
FROM tasks
WHERE project_id IS ? AND column_id IS ?
`
	var position int
	err := s.db.QueryRowContext(ctx, nextPositionQuery, projectID, columnID).Scan(&position)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compute next position")
		return 0, err
	}
	return position, nil
}

// checkColumnRef verifies that projectID names an existing project and
// that columnID, when set, names one of its columns.
func (s *taskServiceImpl) checkColumnRef(ctx context.Context, projectID, columnID *string) error {
	if projectID == nil {
		return nil
	}
	project, err := s.projects.GetProject(ctx, *projectID)
	if err != nil {
		return err
	}
	if columnID == nil {
		return nil
	}
	for _, c := range project.Columns {
		if c.ID == *columnID {
			return nil
		}
	}
	s.logger.Warn().
		Str("project_id", *projectID).
		Str("column_id", *columnID).
		Msg("column does not belong to project")
	return ErrColumnNotFound
}

func (s *taskServiceImpl) writeTask(ctx context.Context, task *models.Task) error {
	tagsJSON, err := json.Marshal(task.ContextTags)
	if err != nil {
		return err
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = ?,
    description = ?,
    project_id = ?,
    column_id = ?,
    due_date = ?,
    scheduled_date = ?,
    energy_level = ?,
    context_tags = ?,
    time_estimate = ?,
    position = ?,
    in_today = ?,
    archived = ?,
    completed_at = ?,
    updated_at = ?
WHERE id = ?
`
	_, err = s.db.ExecContext(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.ProjectID,
		task.ColumnID,
		task.DueDate,
		task.ScheduledDate,
		task.EnergyLevel,
		string(tagsJSON),
		task.TimeEstimate,
		task.Position,
		task.InToday,
		task.Archived,
		task.CompletedAt,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to write task")
	}
	return err
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var tagsJSON string
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.ProjectID,
		&task.ColumnID,
		&task.DueDate,
		&task.ScheduledDate,
		&task.EnergyLevel,
		&tagsJSON,
		&task.TimeEstimate,
		&task.Position,
		&task.InToday,
		&task.Archived,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal([]byte(tagsJSON), &task.ContextTags); err != nil {
		return nil, err
	}
	if task.ContextTags == nil {
		task.ContextTags = []string{}
	}
	return task, nil
}
