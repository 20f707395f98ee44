package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologAdapter bridges rs/zerolog to the planner's Logger interface.
// Every entry carries the component it was emitted from so searches,
// comparisons and sinks can be told apart in aggregated output.
type zerologAdapter struct {
	log zerolog.Logger
}

// NewZerologLogger builds a component-scoped logger. APP_ENV=dev selects
// the human-readable console writer; anything else emits JSON lines.
// EV_LOG_LEVEL overrides the default info level.
func NewZerologLogger(component string) Logger {
	z := zerolog.New(output()).
		Level(level()).
		With().
		Timestamp().
		Str("component", component).
		Logger()
	return &zerologAdapter{log: z}
}

func output() io.Writer {
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

func level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("EV_LOG_LEVEL")))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *zerologAdapter) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologAdapter) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologAdapter) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
