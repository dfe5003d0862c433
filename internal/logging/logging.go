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

// Options configures New.
type Options struct {
	Level     string // debug, info, warn/warning, error
	FilePath  string // empty logs to the fallback writer
	MaxSizeMB int
	MaxFiles  int
}

const (
	defaultMaxSizeMB = 5
	defaultMaxFiles  = 3
)

// ParseLevel converts a config string to an slog level. Unknown values map to
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds a text logger. When opts.FilePath is set the output goes to a
// size-rotated file, otherwise to fallback (nil discards). The returned
// closer releases the file.
func New(opts Options, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	if opts.FilePath == "" {
		if fallback == nil {
			return slog.New(slog.DiscardHandler), nopCloser{}, nil
		}
		return slog.New(slog.NewTextHandler(fallback, handlerOpts)), nopCloser{}, nil
	}

	f, err := openRotating(opts)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, handlerOpts)), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openRotating returns a writer that keeps at most MaxFiles old logs next to
// FilePath, rotating once the file passes MaxSizeMB.
func openRotating(opts Options) (*lumberjack.Logger, error) {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = defaultMaxSizeMB
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = defaultMaxFiles
	}
	dir := filepath.Dir(opts.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxFiles,
		LocalTime:  true,
	}, nil
}
