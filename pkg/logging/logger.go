package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey int

const (
	fieldsKey contextKey = iota
)

// ZapLogger writes structured logs enriched with the fields stored in the context.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(level zapcore.Level, options ...Option) (*ZapLogger, error) {
	atomicLevel := zap.NewAtomicLevelAt(level)
	s := newSettings(atomicLevel, options...)
	logger, err := s.config.Build(s.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &ZapLogger{
		logger: logger,
	}, nil
}

// NewFromZap wraps an already configured zap logger, e.g. zap.NewNop in tests.
func NewFromZap(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger: logger,
	}
}

func ParseLevel(text string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", text, err)
	}
	return level, nil
}

func (l *ZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Debug(msg, l.withContextFields(ctx, fields)...)
}

func (l *ZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Info(msg, l.withContextFields(ctx, fields)...)
}

func (l *ZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Warn(msg, l.withContextFields(ctx, fields)...)
}

func (l *ZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Error(msg, l.withContextFields(ctx, fields)...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync() //nolint:wrapcheck // unnecessary
}

func (l *ZapLogger) withContextFields(ctx context.Context, fields []zap.Field) []zap.Field {
	ctxFields := fieldsFromContext(ctx)
	if len(ctxFields) == 0 {
		return fields
	}
	res := make([]zap.Field, 0, len(ctxFields)+len(fields))
	res = append(res, ctxFields...)
	return append(res, fields...)
}

// WithContextFields returns a copy of ctx carrying fields in addition to the ones
// already attached by outer callers.
func WithContextFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing := fieldsFromContext(ctx)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(fieldsKey).([]zap.Field)
	if !ok {
		return nil
	}
	return fields
}
