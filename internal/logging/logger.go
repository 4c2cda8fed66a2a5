// Package logging provides structured logging with secret redaction. SRP
// secrets (passwords, ephemerals, proofs, verifiers) are never written.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log entry.
type LogLevel string

// Log severity levels.
const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// rank orders levels; unknown levels rank below debug.
func (l LogLevel) rank() int {
	return slices.Index([]LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}, l)
}

// LogFormat represents the output format for log entries.
type LogFormat string

// Log output formats.
const (
	FormatJSON  LogFormat = "json"
	FormatHuman LogFormat = "human"
)

// ParseLevel returns the LogLevel named by s.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(s))
	if level.rank() < 0 {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// ParseFormat returns the LogFormat named by s.
func ParseFormat(s string) (LogFormat, error) {
	switch format := LogFormat(strings.ToLower(s)); format {
	case FormatJSON, FormatHuman:
		return format, nil
	default:
		return "", fmt.Errorf("unknown log format %q", s)
	}
}

// Logger writes leveled entries. Error entries go to the error stream, all
// others to the output stream. A Logger is safe for concurrent use.
type Logger struct {
	level    LogLevel
	format   LogFormat
	redactor *Redactor

	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a Logger writing to os.Stdout and os.Stderr.
func New(level LogLevel, format LogFormat) *Logger {
	return &Logger{
		level:    level,
		format:   format,
		redactor: NewRedactor(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput replaces the output streams.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = stdout
	l.stderr = stderr
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// Warn logs a warn-level message.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, mergeFields(fields...))
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

// DebugContext logs a debug-level message with the fields carried by ctx.
func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, contextFields(ctx, fields))
}

// InfoContext logs an info-level message with the fields carried by ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, contextFields(ctx, fields))
}

// WarnContext logs a warn-level message with the fields carried by ctx.
func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, contextFields(ctx, fields))
}

// ErrorContext logs an error-level message with the fields carried by ctx.
func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...map[string]any) {
	l.log(LevelError, msg, contextFields(ctx, fields))
}

func (l *Logger) log(level LogLevel, msg string, fields map[string]any) {
	if level.rank() < l.level.rank() {
		return
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   l.redactor.RedactString(msg),
		Fields:    l.redactor.RedactFields(fields),
	}

	var line string
	if l.format == FormatHuman {
		line = formatHuman(entry)
	} else {
		line = formatJSON(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.stdout
	if level == LevelError {
		w = l.stderr
	}
	_, _ = io.WriteString(w, line)
}

func formatJSON(entry logEntry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":"error","message":"failed to marshal log entry: %s"}`+"\n",
			entry.Timestamp, err)
	}
	return string(data) + "\n"
}

// formatHuman renders "[time] level: message k=v ..." with keys sorted.
func formatHuman(entry logEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", entry.Timestamp, entry.Level, entry.Message)
	for _, k := range slices.Sorted(maps.Keys(entry.Fields)) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}
	b.WriteString("\n")
	return b.String()
}

func mergeFields(fields ...map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	merged := make(map[string]any)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	return merged
}
