package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZerologLogger(t *testing.T) {
	log := New("test")
	require.NotNil(t, log)

	// All levels must be callable without panicking.
	log.Debugf("debug %d", 1)
	log.Debugw("debug", map[string]any{"k": "v"})
	log.Infof("info")
	log.Warnf("warn")
	log.Errorf("error")
}

func TestLevelFromEnvironment(t *testing.T) {
	t.Setenv("EV_LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, level())

	t.Setenv("EV_LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, level())

	t.Setenv("EV_LOG_LEVEL", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, level())

	t.Setenv("EV_LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, level())
}

func TestOutputFormat(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	assert.IsType(t, zerolog.ConsoleWriter{}, output())

	t.Setenv("APP_ENV", "production")
	assert.NotNil(t, output())
}
