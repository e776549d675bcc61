package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// Fields carries structured key/value pairs attached to a log record
type Fields map[string]interface{}

// Logger writes commands, errors and diagnostic messages to three separate
// JSON log streams
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	closers       []io.Closer
	mu            sync.RWMutex
	level         LogLevel // most verbose level written to the info log
}

// NewLogger creates a Logger writing into cfg.LogFolder. Warn, Info and
// Debug messages are kept only up to level.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, name := range []string{cfg.CommandLog, cfg.ErrorLog, cfg.InfoLog} {
		path := filepath.Join(cfg.LogFolder, name)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		files = append(files, f)
	}

	logger := New(files[0], files[1], files[2], level)
	for _, f := range files {
		logger.closers = append(logger.closers, f)
	}
	return logger, nil
}

// New creates a Logger over arbitrary writers
func New(command, errs, info io.Writer, level LogLevel) *Logger {
	return &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(command, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errs, &slog.HandlerOptions{Level: slog.LevelError})),
		infoLogger:    slog.New(slog.NewJSONHandler(info, &slog.HandlerOptions{Level: slog.LevelDebug})),
		level:         level,
	}
}

// Discard returns a Logger that drops everything
func Discard() *Logger {
	return New(io.Discard, io.Discard, io.Discard, LevelCommand)
}

// Command records one line entered by the user
func (l *Logger) Command(ctx context.Context, command string, fields Fields) {
	l.commandLogger.Log(ctx, LevelCommand.toSlogLevel(), command, fields.args()...)
}

// Error records a failure
func (l *Logger) Error(ctx context.Context, message string, fields Fields) {
	l.errorLogger.Log(ctx, LevelError.toSlogLevel(), message, fields.args()...)
}

// Warn records a recoverable problem
func (l *Logger) Warn(ctx context.Context, message string, fields Fields) {
	l.info(ctx, LevelWarn, message, fields)
}

// Info records normal operation
func (l *Logger) Info(ctx context.Context, message string, fields Fields) {
	l.info(ctx, LevelInfo, message, fields)
}

// Debug records detail useful when tracing a problem
func (l *Logger) Debug(ctx context.Context, message string, fields Fields) {
	l.info(ctx, LevelDebug, message, fields)
}

func (l *Logger) info(ctx context.Context, level LogLevel, message string, fields Fields) {
	if !l.Enabled(level) {
		return
	}
	l.infoLogger.Log(ctx, level.toSlogLevel(), message, fields.args()...)
}

// Enabled reports whether messages at level reach the info log
func (l *Logger) Enabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level <= l.level
}

// SetLevel changes the most verbose level written to the info log
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Close closes every log file opened by NewLogger
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close log files: %w", err)
	}
	return nil
}

// args flattens the fields into slog key/value pairs in key order
func (f Fields) args() []any {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(f)*2)
	for _, k := range keys {
		args = append(args, k, f[k])
	}
	return args
}
