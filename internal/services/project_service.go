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

	"gtd/internal/models"
	"gtd/internal/storage/sqlite"
)

type projectServiceImpl struct {
	logger zerolog.Logger
	db     *sqlite.DB
}

func NewProjectService(logger zerolog.Logger, db *sqlite.DB) ProjectService {
	return &projectServiceImpl{
		logger: logger,
		db:     db,
	}
}

const selectProjectColumns = `
SELECT id,
       name,
       description,
       color,
       icon,
       columns,
       default_view,
       archived,
       created_at,
       updated_at
FROM projects
`

func (s *projectServiceImpl) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	if strings.TrimSpace(params.Name) == "" {
		s.logger.Warn().Msg("rejected project with empty name")
		return nil, ErrNameRequired
	}

	now := time.Now()
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		Color:       params.Color,
		Icon:        params.Icon,
		Columns:     params.Columns,
		DefaultView: params.DefaultView,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.Color == "" {
		project.Color = "#6366f1"
	}
	if project.DefaultView == "" {
		project.DefaultView = models.ViewBoard
	}
	if len(project.Columns) == 0 {
		project.Columns = models.DefaultColumns(uuid.NewString)
	}

	columnsJSON, err := json.Marshal(project.Columns)
	if err != nil {
		return nil, err
	}

	const insertProjectQuery = `
INSERT INTO projects (id,
                      name,
                      description,
                      color,
                      icon,
                      columns,
                      default_view,
                      archived,
                      created_at,
                      updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(
		ctx,
		insertProjectQuery,
		project.ID,
		project.Name,
		project.Description,
		project.Color,
		project.Icon,
		string(columnsJSON),
		project.DefaultView,
		project.Archived,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("name", project.Name).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, selectProjectColumns+"WHERE id = ?", id)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().
				Str("project_id", id).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to select project")
		return nil, err
	}
	return project, nil
}

func (s *projectServiceImpl) ListProjects(ctx context.Context, includeArchived bool) ([]*models.Project, error) {
	query := selectProjectColumns
	if !includeArchived {
		query += "WHERE archived = 0\n"
	}
	query += "ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select projects")
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan project")
			return nil, err
		}
		projects = append(projects, project)
	}
	if err = rows.Err(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(projects)).
		Msg("selected projects")
	return projects, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	before := project.Columns
	patch.Apply(project, time.Now())

	columnsJSON, err := json.Marshal(project.Columns)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const updateProjectQuery = `
UPDATE projects
SET name = ?,
    description = ?,
    color = ?,
    icon = ?,
    columns = ?,
    default_view = ?,
    archived = ?,
    updated_at = ?
WHERE id = ?
`
	_, err = tx.ExecContext(
		ctx,
		updateProjectQuery,
		project.Name,
		project.Description,
		project.Color,
		project.Icon,
		string(columnsJSON),
		project.DefaultView,
		project.Archived,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to update project")
		return nil, err
	}

	// Replacing the column list detaches tasks that referenced a column
	// that no longer exists.
	if patch.Columns != nil {
		for _, removed := range removedColumnIDs(before, project.Columns) {
			const detachTasksQuery = `
UPDATE tasks
SET column_id = NULL,
    updated_at = ?
WHERE project_id = ? AND column_id = ?
`
			if _, err = tx.ExecContext(ctx, detachTasksQuery, project.UpdatedAt, project.ID, removed); err != nil {
				s.logger.Error().
					Err(err).
					Str("column_id", removed).
					Msg("failed to detach tasks from removed column")
				return nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Tasks are detached, never deleted: the project_id foreign key nulls
	// on delete, but column_id has to be cleared by hand since columns
	// live inside the project row.
	const detachTasksQuery = `
UPDATE tasks
SET column_id = NULL,
    updated_at = ?
WHERE project_id = ?
`
	if _, err = tx.ExecContext(ctx, detachTasksQuery, time.Now(), id); err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to detach tasks")
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to delete project")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}

	s.logger.Info().
		Str("project_id", id).
		Msg("deleted project")
	return nil
}

func removedColumnIDs(before, after []models.Column) []string {
	kept := make(map[string]bool, len(after))
	for _, c := range after {
		kept[c.ID] = true
	}
	var removed []string
	for _, c := range before {
		if !kept[c.ID] {
			removed = append(removed, c.ID)
		}
	}
	return removed
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var columnsJSON string
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Color,
		&project.Icon,
		&columnsJSON,
		&project.DefaultView,
		&project.Archived,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal([]byte(columnsJSON), &project.Columns); err != nil {
		return nil, err
	}
	if project.Columns == nil {
		project.Columns = []models.Column{}
	}
	return project, nil
}
