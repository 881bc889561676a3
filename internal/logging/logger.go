// Package logging exposes structured logging for the ingestion pipeline
// and the MCP server. Log lines flow through logr so library code stays
// backend-agnostic; zap provides the actual sink.
package logging

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin convenience layer over logr.Logger. Debug maps onto
// logr verbosity level 1 so it can be toggled with the configured level.
type Logger struct {
	log logr.Logger
}

// New wraps an existing logr.Logger; an uninitialized one selects the
// module default.
func New(base logr.Logger) Logger {
	if base.GetSink() == nil {
		base = DefaultLogger()
	}
	return Logger{log: base}
}

// DefaultLogger builds the module's default sink at info level.
func DefaultLogger() logr.Logger {
	return buildZapr(zapcore.InfoLevel)
}

// ForLevel builds a Logger honoring the configured level name. Unknown
// names mean info.
func ForLevel(level string) Logger {
	var zl zapcore.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		zl = zapcore.DebugLevel
	case "warn", "warning":
		zl = zapcore.WarnLevel
	case "error":
		zl = zapcore.ErrorLevel
	default:
		zl = zapcore.InfoLevel
	}
	return Logger{log: buildZapr(zl)}
}

func buildZapr(level zapcore.Level) logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return zapr.NewLogger(zl)
}

func (l Logger) WithName(name string) Logger {
	return Logger{log: l.log.WithName(name)}
}

func (l Logger) WithValues(keysAndValues ...any) Logger {
	return Logger{log: l.log.WithValues(keysAndValues...)}
}

func (l Logger) Info(msg string, keysAndValues ...any) {
	l.log.Info(msg, keysAndValues...)
}

func (l Logger) Debug(msg string, keysAndValues ...any) {
	l.log.V(1).Info(msg, keysAndValues...)
}

func (l Logger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(err, msg, keysAndValues...)
}
