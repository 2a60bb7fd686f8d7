package app

import (
	"gtd/internal/config"
	"gtd/internal/storage/sqlite"
)

var globalDB *sqlite.DB

func MustOpenSQLite() {
	cfg := config.Global().SQLite

	db, err := sqlite.Open(cfg.Path)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Path).
			Msg("failed to open sqlite database")
		panic(err)
	}
	globalDB = db

	globalLogger.Info().
		Str("path", cfg.Path).
		Msg("opened sqlite database")
}

func CloseSQLite() {
	if err := globalDB.Close(); err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close sqlite database")
		return
	}
	globalLogger.Info().Msg("closed sqlite database")
}
