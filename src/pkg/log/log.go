// Package log provides functionality for logging commands, errors and diagnostics
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"filmscape/local-app/src/pkg/model"
)

// Fields carries the structured attributes of a log entry
type Fields map[string]interface{}

// Logger writes to separate command, error and info logs
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	level         LogLevel
}

// NewLogger creates a new Logger instance writing into the configured log folder
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, err
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	logger := NewWriterLogger(commandFile, errorFile, infoFile, level)
	logger.files = files
	return logger, nil
}

// NewWriterLogger creates a Logger over arbitrary writers
func NewWriterLogger(command, errs, info io.Writer, level LogLevel) *Logger {
	return &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(command, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errs, &slog.HandlerOptions{Level: slog.LevelWarn})),
		infoLogger:    slog.New(slog.NewJSONHandler(info, &slog.HandlerOptions{Level: level.toSlogLevel()})),
		level:         level,
	}
}

// NewNopLogger returns a Logger that discards everything
func NewNopLogger() *Logger {
	return NewWriterLogger(io.Discard, io.Discard, io.Discard, LevelError)
}

// Command records a received command
func (l *Logger) Command(ctx context.Context, msg string, fields Fields) {
	l.commandLogger.InfoContext(ctx, msg, fields.attrs()...)
}

// Error records a failure in the error log and mirrors it into the info log
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.errorLogger.ErrorContext(ctx, msg, fields.attrs()...)
	l.infoLogger.ErrorContext(ctx, msg, fields.attrs()...)
}

// Warn records a rejected or unusual operation
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.errorLogger.WarnContext(ctx, msg, fields.attrs()...)
	l.infoLogger.WarnContext(ctx, msg, fields.attrs()...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.infoLogger.InfoContext(ctx, msg, fields.attrs()...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.infoLogger.DebugContext(ctx, msg, fields.attrs()...)
}

// Level returns the verbosity of the info log
func (l *Logger) Level() LogLevel {
	return l.level
}

// Close closes all log files opened by NewLogger
func (l *Logger) Close() error {
	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
		}
	}
	l.files = nil
	return firstErr
}

func (f Fields) attrs() []any {
	if len(f) == 0 {
		return nil
	}
	attrs := make([]any, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
