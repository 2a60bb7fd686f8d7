package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gtd/internal/gtd"
	"gtd/internal/models"
	"gtd/internal/storage/sqlite"
)

// timerServiceImpl owns the single active-timer slot for one server
// instance. The core Timer enforces the at-most-one invariant; the mutex
// only serializes concurrent HTTP requests around it, since the handlers
// run on separate goroutines.
type timerServiceImpl struct {
	logger zerolog.Logger
	db     *sqlite.DB

	mu    sync.Mutex
	timer gtd.Timer
}

func NewTimerService(logger zerolog.Logger, db *sqlite.DB) TimerService {
	return &timerServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *timerServiceImpl) Start(ctx context.Context, taskID string) (*models.ActiveTimer, error) {
	var projectID *string
	const selectTaskProjectQuery = `
SELECT project_id
FROM tasks
WHERE id = ?
`
	err := s.db.QueryRowContext(ctx, selectTaskProjectQuery, taskID).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("timer start for unknown task")
		return nil, ErrTaskNotFound
	} else if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task for timer")
		return nil, err
	}

	s.mu.Lock()
	closed := s.timer.Start(&taskID, projectID, time.Now())
	active := s.timer.Active()
	s.mu.Unlock()

	if closed != nil {
		if err = s.persistEntry(ctx, closed); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("entry_id", closed.ID).
			Int64("duration_ms", *closed.Duration).
			Msg("closed previous timer interval")
	}

	s.logger.Info().
		Str("task_id", taskID).
		Time("start_time", active.StartTime).
		Msg("started timer")
	return active, nil
}

func (s *timerServiceImpl) Stop(ctx context.Context) (*models.TimeEntry, error) {
	s.mu.Lock()
	entry, err := s.timer.Stop(time.Now())
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn().Msg("timer stop while idle")
		return nil, err
	}

	if err = s.persistEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Int64("duration_ms", *entry.Duration).
		Msg("stopped timer")
	return entry, nil
}

func (s *timerServiceImpl) Active() *models.ActiveTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Active()
}

func (s *timerServiceImpl) persistEntry(ctx context.Context, entry *models.TimeEntry) error {
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
			Str("entry_id", entry.ID).
			Msg("failed to insert time entry")
	}
	return err
}
