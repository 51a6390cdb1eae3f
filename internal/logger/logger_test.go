package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

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
			message: "Fetching post",
			fields:  Fields{"url": "https://www.instagram.com/p/ABC123/"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false, // won't log (below INFO)
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "Fetch failed",
			err:     errors.New("unexpected status code: 404"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := buf.Len()

			logger.write(tt.level, tt.message, tt.fields, tt.err)

			assert.Equal(t, tt.want, buf.Len() > before)
		})
	}
}

func TestLogger_EntryContents(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("Fetch failed", Fields{"url": "https://www.instagram.com/p/X/"}, errors.New("timeout"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "Fetch failed", entry.Message)
	assert.Equal(t, "timeout", entry.Error)
	assert.Equal(t, "https://www.instagram.com/p/X/", entry.Fields["url"])
	_, err := time.Parse(time.RFC3339, entry.Timestamp)
	assert.NoError(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{" warn ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("fetch.success")
	m.IncrCounter("fetch.success")
	m.IncrCounter("fetch.success")

	snapshot := m.GetSnapshot()
	counters := snapshot["counters"].(map[string]int64)

	assert.Equal(t, int64(3), counters["fetch.success"])
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("caption.runes", 120)
	m.SetGauge("caption.runes", 64)

	snapshot := m.GetSnapshot()
	gauges := snapshot["gauges"].(map[string]float64)

	assert.Equal(t, 64.0, gauges["caption.runes"])
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("fetch.duration", 100*time.Millisecond)
	m.RecordTiming("fetch.duration", 200*time.Millisecond)
	m.RecordTiming("fetch.duration", 150*time.Millisecond)

	snapshot := m.GetSnapshot()
	timings := snapshot["timings"].(map[string]map[string]interface{})

	fetchTiming := timings["fetch.duration"]
	assert.Equal(t, 3, fetchTiming["count"])
	assert.Equal(t, "100ms", fetchTiming["min"])
	assert.Equal(t, "200ms", fetchTiming["max"])
	assert.Equal(t, "150ms", fetchTiming["average"])
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(New(LevelWarn, io.Discard))

	Debug("test debug", Fields{"key": "value"})
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.True(t, Enabled(LevelDebug))

	SetDefault(New(LevelWarn, &buf))
	buf.Reset()

	Debug("hidden", nil)

	assert.Empty(t, buf.String())
	assert.False(t, Enabled(LevelDebug))
	assert.True(t, Enabled(LevelError))
}

func TestMetrics_EmptySnapshot(t *testing.T) {
	snapshot := NewMetrics().GetSnapshot()

	assert.Empty(t, snapshot["counters"].(map[string]int64))
	assert.Empty(t, snapshot["gauges"].(map[string]float64))
	assert.Empty(t, snapshot["timings"].(map[string]map[string]interface{}))
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
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.minLevel, &buf)

			logger.write(tt.logLevel, "test", nil, nil)

			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
			assert.Equal(t, tt.shouldLog, logger.Enabled(tt.logLevel))
		})
	}
}
