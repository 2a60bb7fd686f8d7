package app

import (
	// Loads .env before config is read, for local runs.
	_ "github.com/joho/godotenv/autoload"

	"gtd/internal/config"
)

// MustReadEnv reads configuration from the environment and installs it as
// the process-wide config.
func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}

	config.SetGlobal(cfg)
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTP.Port).
		Msg("read env")
}
