package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestParseLogLevel(t *testing.T) {
	level, ok := ParseLogLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, LogLevelDebug, level)

	_, ok = ParseLogLevel("verbose")
	assert.False(t, ok)
}

func TestLoggerRespectsLevel(t *testing.T) {
	buf := captureLog(t)

	logger := NewLogger(LogLevelWarn).With("loader")
	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)

	assert.Equal(t, "[WARN] [loader] shown 2\n", buf.String())
}

func TestLoggerWithNestsComponents(t *testing.T) {
	buf := captureLog(t)

	logger := NewLogger(LogLevelTrace).With("loader").With("DataReader")
	logger.Trace("row %d skipped", 7)

	assert.Equal(t, "[TRACE] [loader/DataReader] row 7 skipped\n", buf.String())
}
