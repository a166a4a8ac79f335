package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := buf.Len()
			logger.log(tt.level, tt.message, tt.fields, tt.err)
			assert.Equal(t, tt.want, buf.Len() > before)
		})
	}
}

func TestLogger_EntryFormat(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2020, 3, 28, 14, 5, 0, 0, time.UTC)))
	defer SetClock(nil)

	var buf bytes.Buffer
	New(LevelDebug, &buf).Error("parse failed", Fields{"file": "a.html"}, errors.New("boom"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "2020-03-28T14:05:00Z", entry.Timestamp)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, "a.html", entry.Fields["file"])
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"info doesn't log at warn", LevelWarn, LevelInfo, false},
		{"warn logs at warn", LevelWarn, LevelWarn, true},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(tt.minLevel, &buf).log(tt.logLevel, "test", nil, nil)
			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(New(LevelWarn, &buf))
	defer SetDefault(previous)

	Default().Info("hidden", nil)
	Default().Warn("shown", Fields{"component": "test"})

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "shown", entry.Message)
}
