package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p3bustos/jobtracker/internal/logger"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "debug", false)
	log.Info().Int64("applicationId", 7).Msg("application created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "tracker-service", line["service"])
	assert.Equal(t, float64(7), line["applicationId"])
	assert.Equal(t, "application created", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "warn", false)
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "chatty", false)
	log.Debug().Msg("dropped")
	log.Info().Msg("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf, "info", true).Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()), "pretty output is not JSON")
}

func TestGet_DefaultsToNop(t *testing.T) {
	logger.Global = nil
	assert.NotNil(t, logger.Get())

	logger.Init("info", false)
	assert.Same(t, logger.Global, logger.Get())
	logger.Global = nil
}
