package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Constants for logging levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Environment names known to New
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Logger interface defines the logging contract
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger
	WithGroup(name string) Logger
}

// New creates logger suitable for the environment:
// human readable text for development, JSON for everything else
func New(environment string, level string) (Logger, error) {
	switch strings.ToLower(environment) {
	case EnvDevelopment:
		return NewTextLogger(level)
	default:
		return NewJSONLogger(level)
	}
}

// NewTextLogger creates a new text logger with the specified level
func NewTextLogger(level string) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   true,
		ReplaceAttr: trimSourcePath,
	}

	return &slogLogger{logger: slog.New(slog.NewTextHandler(os.Stderr, opts))}, nil
}

// NewJSONLogger creates a new JSON logger with the specified level
func NewJSONLogger(level string) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   true,
		ReplaceAttr: trimSourcePath,
	}

	return &slogLogger{logger: slog.New(slog.NewJSONHandler(os.Stderr, opts))}, nil
}

// NewNoOpLogger creates a logger that discards all log messages
func NewNoOpLogger() Logger {
	return &slogLogger{logger: slog.New(slog.DiscardHandler)}
}

// parseLevel converts string level to slog.Level
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", level)
	}
}
