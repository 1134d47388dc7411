package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the level implied by the -v flag, using zerolog's
// level names ("trace", "debug", "warn", ...).
const EnvLogLevel = "RRCPERMITS_LOG_LEVEL"

// Init configures the process logger and installs it as the global one.
// Logs go to stderr; stdout stays clean for reports and the interactive
// browser.
func Init(app string, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if raw := strings.TrimSpace(os.Getenv(EnvLogLevel)); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
