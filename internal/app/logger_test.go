package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer

	// --- Act ---
	logger, err := newLogger("debug", "json", &buf)

	// --- Assert ---
	require.NoError(t, err)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLogger_DefaultsToInfoText(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer

	// --- Act ---
	logger, err := newLogger("", "", &buf)

	// --- Assert ---
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_RejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	_, err := newLogger("verbose", "text", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")

	_, err = newLogger("info", "xml", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
