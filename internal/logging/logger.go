package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured context for one log entry.
type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = zap.Must(zap.NewProduction())
)

// Configure rebuilds the package logger. Level must be one of "debug",
// "info", "warn", "error"; format must be "json" or "console".
func Configure(level, format string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	mu.Lock()
	logger = built
	mu.Unlock()
	return nil
}

func zapFields(fields Fields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Info(msg, zapFields(fields)...)
}

// Error logs an error message and includes the error in the fields.
func Error(msg string, err error, fields Fields) {
	mu.RLock()
	defer mu.RUnlock()
	fs := zapFields(fields)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	logger.Error(msg, fs...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	mu.RLock()
	fs := zapFields(fields)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	l := logger
	mu.RUnlock()
	l.Error(msg, fs...)
	_ = l.Sync()
	os.Exit(1)
}
