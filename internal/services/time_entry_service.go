package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gtd/internal/models"
	"gtd/internal/storage/sqlite"
)

const defaultEntryLimit = 100

type timeEntryServiceImpl struct {
	logger zerolog.Logger
	db     *sqlite.DB
}

func NewTimeEntryService(logger zerolog.Logger, db *sqlite.DB) TimeEntryService {
	return &timeEntryServiceImpl{
		logger: logger,
		db:     db,
	}
}

const selectEntryColumns = `
SELECT id,
       task_id,
       project_id,
       start_time,
       end_time,
       duration,
       notes,
       created_at
FROM time_entries
`

func (s *timeEntryServiceImpl) CreateEntry(ctx context.Context, params CreateTimeEntryParams) (*models.TimeEntry, error) {
	entry := &models.TimeEntry{
		ID:        uuid.NewString(),
		TaskID:    params.TaskID,
		ProjectID: params.ProjectID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Duration:  params.Duration,
		Notes:     params.Notes,
		CreatedAt: time.Now(),
	}

	const insertEntryQuery = `
INSERT INTO time_entries (id,
                          task_id,
                          project_id,
                          start_time,
                          end_time,
                          duration,
                          notes,
                          created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(
		ctx,
		insertEntryQuery,
		entry.ID,
		entry.TaskID,
		entry.ProjectID,
		entry.StartTime,
		entry.EndTime,
		entry.Duration,
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert time entry")
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Msg("created time entry")
	return entry, nil
}

func (s *timeEntryServiceImpl) ListEntries(ctx context.Context, filter TimeEntryFilter) ([]*models.TimeEntry, error) {
	query := selectEntryColumns + "WHERE 1=1"
	args := make([]any, 0, 3)

	if filter.TaskID != nil {
		query += " AND task_id = ?"
		args = append(args, *filter.TaskID)
	}
	if filter.ProjectID != nil {
		query += " AND project_id = ?"
		args = append(args, *filter.ProjectID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	query += " ORDER BY start_time DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select time entries")
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.TimeEntry, 0)
	for rows.Next() {
		entry := &models.TimeEntry{}
		err = rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.ProjectID,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Duration,
			&entry.Notes,
			&entry.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan time entry")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(entries)).
		Msg("selected time entries")
	return entries, nil
}
