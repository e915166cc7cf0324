// Package logging wraps zap behind a small structured-logging interface,
// mirroring turtacn-KeyIP-Intelligence/internal/infrastructure/monitoring/logging/logger.go's
// discipline: no package outside this one imports zap directly.
package logging

import "go.uber.org/zap"

// Field is a single structured logging key/value pair.
type Field = zap.Field

func String(key, val string) Field   { return zap.String(key, val) }
func Int(key string, val int) Field  { return zap.Int(key, val) }
func Int64(key string, val int64) Field { return zap.Int64(key, val) }
func Float64(key string, val float64) Field { return zap.Float64(key, val) }
func Err(err error) Field            { return zap.Error(err) }
func Any(key string, val interface{}) Field { return zap.Any(key, val) }

// Logger is the structured logging surface the ambient stack uses.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type zapLogger struct{ l *zap.Logger }

// New builds a production zap-backed Logger.
func New() (Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &zapLogger{l: l}, nil
}

// NewNop returns a Logger that discards everything, the default
// dock.NewScheduler falls back to when given a nil logger
// (SPEC_FULL §4.12).
func NewNop() Logger { return &zapLogger{l: zap.NewNop()} }

func (z *zapLogger) Debug(msg string, fields ...Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...Field) { z.l.Error(msg, fields...) }
func (z *zapLogger) With(fields ...Field) Logger       { return &zapLogger{l: z.l.With(fields...)} }
