// Package logger writes structured JSON log lines and keeps in-process metrics
// for igpost.
//
// Log lines go to stderr by default so they never mix with the snippets printed
// on stdout. Each line is one JSON object:
//
//	{"timestamp":"2026-10-17T09:00:00Z","level":"DEBUG","message":"Fetch failed","fields":{"url":"..."}}
//
// Only debug and error messages are emitted; the level threshold decides
// whether debug lines appear. A Metrics value counts fetch outcomes, tracks the
// length of the last caption and records fetch durations:
//
//	m := logger.NewMetrics()
//	m.IncrCounter("fetch.success")
//	m.SetGauge("caption.runes", 42)
//	m.RecordTiming("fetch.duration", elapsed)
//	logger.Debug("Session metrics", logger.Fields(m.GetSnapshot()))
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry is the JSON shape of one log line
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes entries at or above minLevel to output
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	output   io.Writer
}

var defaultLogger = New(LevelWarn, os.Stderr)

// ParseLevel converts a case-insensitive level name ("debug", "info", "warn",
// "error") into a Level. The boolean is false for unknown names.
func ParseLevel(name string) (Level, bool) {
	level := Level(strings.ToUpper(strings.TrimSpace(name)))
	if level == "WARNING" {
		level = LevelWarn
	}
	if _, ok := levelRank[level]; !ok {
		return "", false
	}
	return level, true
}

// New creates a logger that discards entries below level.
func New(level Level, output io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		output:   output,
	}
}

// SetDefault replaces the logger behind the package-level functions.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level Level) bool {
	return levelRank[level] >= levelRank[l.minLevel]
}

// Debug logs diagnostic detail, shown only with --verbose or logging.level: debug.
func (l *Logger) Debug(message string, fields Fields) {
	l.write(LevelDebug, message, fields, nil)
}

// Error logs a failure together with its cause.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.write(LevelError, message, fields, err)
}

func (l *Logger) write(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	line, marshalErr := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	if marshalErr != nil {
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintf(l.output, "%s\n", line)
}

// Debug logs with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Error logs with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Enabled reports whether the default logger writes entries at level
func Enabled(level Level) bool {
	return defaultLogger.Enabled(level)
}

// Metrics holds counters, gauges and timings for one session. Safe for
// concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

// NewMetrics returns an empty Metrics
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter adds one to the named counter.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge overwrites the named gauge.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming appends one duration sample to the named timing.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], d)
}

// GetSnapshot copies the current values into a map with the keys "counters"
// (map[string]int64), "gauges" (map[string]float64) and "timings"
// (map[string]map[string]interface{} with count, total, average, min and max).
func (m *Metrics) GetSnapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make(map[string]int64, len(m.counters))
	for name, v := range m.counters {
		counters[name] = v
	}

	gauges := make(map[string]float64, len(m.gauges))
	for name, v := range m.gauges {
		gauges[name] = v
	}

	timings := make(map[string]map[string]interface{}, len(m.timings))
	for name, samples := range m.timings {
		if len(samples) > 0 {
			timings[name] = summarize(samples)
		}
	}

	return map[string]interface{}{
		"counters": counters,
		"gauges":   gauges,
		"timings":  timings,
	}
}

// summarize reduces non-empty samples to count, total, average, min and max.
func summarize(samples []time.Duration) map[string]interface{} {
	var total time.Duration
	lo, hi := samples[0], samples[0]
	for _, d := range samples {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}

	return map[string]interface{}{
		"count":   len(samples),
		"total":   total.String(),
		"average": (total / time.Duration(len(samples))).String(),
		"min":     lo.String(),
		"max":     hi.String(),
	}
}
