// Package logger provides logging utilities for the listing generator.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Logger provides structured logging functionality.
type Logger struct {
	internal *slog.Logger
}

// New creates a logger writing text records to w.
func New(level string, w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})

	return &Logger{internal: slog.New(handler)}
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{internal: l.internal.With(args...)}
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *Logger {
	return New("error", io.Discard)
}
