// Package logger builds the zap.Logger used throughout the server,
// adapted from the teacher's logger package with an exported
// AtomicLevel so config.Watch can hot-adjust verbosity without
// rebuilding the logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger together with the AtomicLevel backing it,
// so callers can re-point the level after a config reload.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
}

// New builds a Logger at the given level ("debug", "info", "warn",
// "error") and encoding ("json" for production, "console" for
// development). An unparseable level falls back to info rather than
// failing startup over a typo in a config file.
func New(level string, encoding string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	atom := zap.NewAtomicLevelAt(lvl)

	cfg := zap.Config{
		Level:       atom,
		Development: encoding == "console",
		Encoding:    encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	zl, err := cfg.Build()
	if err != nil {
		os.Stdout.WriteString("FAILED TO INIT LOGGER: " + err.Error())
		os.Exit(1)
	}

	return &Logger{Logger: zl, Level: atom}
}

// SetLevel re-points the logger's verbosity in place; every derived
// sub-logger (via With, Named, ...) observes the change immediately
// since they all share the same AtomicLevel core.
func (l *Logger) SetLevel(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	l.Level.SetLevel(lvl)
}
