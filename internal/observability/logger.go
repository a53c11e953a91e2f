package observability

import (
	"context"
	"fmt"

	"github.com/upb/ai-proxy/internal/shared"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging with context awareness.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
}

// Field represents a structured log field.
type Field = zap.Field

// NewLogger builds a zap logger. format "json" yields the production encoder,
// "console" (or "text") the development one.
func NewLogger(level, format string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	if format == "" {
		format = "json"
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "text":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// contextLogger adds the request ID found in ctx to every entry
type contextLogger struct {
	base *zap.Logger
}

// NewContextLogger wraps base so entries carry the request ID from context
func NewContextLogger(base *zap.Logger) Logger {
	return &contextLogger{base: base}
}

func (l *contextLogger) with(ctx context.Context, fields []Field) []Field {
	if id := shared.RequestID(ctx); id != "" {
		return append(fields, zap.String("request_id", id))
	}
	return fields
}

func (l *contextLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.base.Debug(msg, l.with(ctx, fields)...)
}

func (l *contextLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.base.Info(msg, l.with(ctx, fields)...)
}

func (l *contextLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.base.Warn(msg, l.with(ctx, fields)...)
}

func (l *contextLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.base.Error(msg, l.with(ctx, fields)...)
}
