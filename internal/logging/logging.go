// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, format and sink.
type Options struct {
	App    string
	Level  string
	Format string
	// File switches the sink from stderr to a rotating file.
	File string
	// Debug forces the debug level.
	Debug bool
}

const (
	maxSizeMB  = 20
	maxBackups = 5
	maxAgeDays = 7
)

// Init builds a logger from opts and installs it as the slog default.
// The returned func closes the file sink, if any.
func Init(opts Options) (func() error, error) {
	logger, closeFn, err := New(opts, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

// New builds a logger. stderr is the writer used when no file is configured.
func New(opts Options, stderr io.Writer) (*slog.Logger, func() error, error) {
	writer, closeFn, err := resolveWriter(opts.File, stderr)
	if err != nil {
		return nil, nil, err
	}
	level := ParseLevel(opts.Level)
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	case "", "text":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		_ = closeFn()
		return nil, nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	logger := slog.New(handler)
	if opts.App != "" {
		logger = logger.With(slog.String("app", opts.App))
	}
	return logger, closeFn, nil
}

// ParseLevel maps a level name onto a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveWriter returns stderr or a rotating file writer.
func resolveWriter(path string, stderr io.Writer) (io.Writer, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return stderr, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return rot, rot.Close, nil
}
