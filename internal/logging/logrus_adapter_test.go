package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "upper-case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.DebugLevel)

	logger.Debug("reading source", Field{Key: FieldFile, Value: "3. MARZO 2025 HIPER.xlsx"})
	logger.Info("rows normalized", Field{Key: FieldCount, Value: 42})
	logger.Warn("source skipped", Field{Key: FieldReason, Value: "missing column"})
	logger.Error("export failed")

	out := buf.String()
	assert.Contains(t, out, "reading source")
	assert.Contains(t, out, FieldFile)
	assert.Contains(t, out, "rows normalized")
	assert.Contains(t, out, "count=42")
	assert.Contains(t, out, "source skipped")
	assert.Contains(t, out, "export failed")
}

func TestLogrusAdapter_ChainedContext(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField(FieldRunID, "run-1").
		WithFields(Field{Key: FieldBranch, Value: "HIPER"}).
		WithError(errors.New("boom")).
		Error("consolidation failed")

	out := buf.String()
	assert.Contains(t, out, "consolidation failed")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "HIPER")
	assert.Contains(t, out, "boom")
}

func TestLogrusAdapter_LevelFilter(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{{Key: "a", Value: 1}, {Key: "b", Value: "x"}})
	assert.Len(t, fields, 2)
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, "x", fields["b"])
	assert.Empty(t, convertFields(nil))
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}

func TestSetAllLogLevels_StandardLoggerOnly(t *testing.T) {
	previous := logrus.GetLevel()
	defer logrus.SetLevel(previous)

	SetAllLogLevels(logrus.ErrorLevel)
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
	assert.Equal(t, logrus.InfoLevel, logrus.New().GetLevel())

	adapter, ok := NewLogrusAdapter("debug", "text").(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, adapter.logger.GetLevel())
}
