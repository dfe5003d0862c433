package main

import (
	"io"
	"log/slog"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/logging"
	"github.com/1broseidon/floatwin/internal/statepath"
)

// newLogger builds the process logger from cfg. Without a log_file it writes
// to fallback.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:    cfg.LogLevel,
		FilePath: cfg.LogFile,
	}, fallback)
}

// defaultLogFile is where the TUI logs when log_file is unset, so output does
// not land on the alternate screen.
func defaultLogFile() string {
	path, err := statepath.LogFile()
	if err != nil {
		return ""
	}
	return path
}
