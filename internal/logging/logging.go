// Package logging wraps the structured logger used across the smf CLI
// behind a small interface, so packages depend on Logger rather than on
// zap directly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface every package in this module depends on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

// NewZap builds a Logger backed by zap. level is one of "debug", "info",
// "warn", "error" (defaults to "info" when unrecognized); format is
// "console" or "json" (defaults to "console").
func NewZap(level, format string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if format == "console" || format == "" {
		cfg = zap.NewDevelopmentConfig()
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{s: l.Sugar()}, nil
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want smf's logging.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}
