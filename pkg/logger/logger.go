// Package logger defines the structured logging interface used across the
// Minerva service. The production implementation lives in
// internal/infrastructure/monitoring and is backed by zap.
package logger

import "context"

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the structured, context-aware logging interface.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Fields)
	Info(ctx context.Context, msg string, fields ...Fields)
	Warn(ctx context.Context, msg string, fields ...Fields)
	Error(ctx context.Context, msg string, err error, fields ...Fields)
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that attaches the given fields to every entry.
	WithFields(fields Fields) Logger
}
