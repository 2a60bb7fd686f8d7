package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"gtd/internal/config"
)

var globalLogger zerolog.Logger

// InitDefaultLogger installs a plain JSON logger so that startup steps
// running before the env is read still produce structured output.
func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

// MustInitApplicationLogger reconfigures the global logger for the
// configured env: human-readable console output at trace level locally,
// JSON at debug/info levels elsewhere.
func MustInitApplicationLogger() {
	cfg := config.Global()

	level, console := logProfile(cfg.Env)
	if level == zerolog.Disabled {
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}
	zerolog.SetGlobalLevel(level)

	w := io.Writer(os.Stdout)
	if console {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("initialized application logger")
}

func logProfile(env string) (zerolog.Level, bool) {
	switch env {
	case config.EnvLocal:
		return zerolog.TraceLevel, true
	case config.EnvDev:
		return zerolog.DebugLevel, false
	case config.EnvProd:
		return zerolog.InfoLevel, false
	default:
		return zerolog.Disabled, false
	}
}
