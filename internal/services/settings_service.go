package services

import (
	"context"

	"github.com/rs/zerolog"

	"gtd/internal/models"
	"gtd/internal/storage/sqlite"
)

// settingsID is the primary key of the singleton settings row.
const settingsID = "default"

type settingsServiceImpl struct {
	logger zerolog.Logger
	db     *sqlite.DB
}

func NewSettingsService(logger zerolog.Logger, db *sqlite.DB) SettingsService {
	return &settingsServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *settingsServiceImpl) GetSettings(ctx context.Context) (*models.Settings, error) {
	const selectSettingsQuery = `
SELECT today_task_limit,
       auto_include_due_today,
       theme,
       start_of_week
FROM settings
WHERE id = ?
`
	settings := &models.Settings{}
	err := s.db.QueryRowContext(ctx, selectSettingsQuery, settingsID).Scan(
		&settings.TodayTaskLimit,
		&settings.AutoIncludeDueToday,
		&settings.Theme,
		&settings.StartOfWeek,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select settings")
		return nil, err
	}
	return settings, nil
}

func (s *settingsServiceImpl) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	patch.Apply(settings)

	const updateSettingsQuery = `
UPDATE settings
SET today_task_limit = ?,
    auto_include_due_today = ?,
    theme = ?,
    start_of_week = ?
WHERE id = ?
`
	_, err = s.db.ExecContext(
		ctx,
		updateSettingsQuery,
		settings.TodayTaskLimit,
		settings.AutoIncludeDueToday,
		settings.Theme,
		settings.StartOfWeek,
		settingsID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to update settings")
		return nil, err
	}

	s.logger.Info().
		Int("today_task_limit", settings.TodayTaskLimit).
		Msg("updated settings")
	return settings, nil
}
