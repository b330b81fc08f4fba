// Package logging builds the application logger: structured slog output
// to stdout plus a size-rotated file per environment.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"visionly/internal/config"
)

// NewLogger creates the application logger from config. Production logs
// at the configured level to stdout and a rotated file; tests log errors
// only so failures stay readable.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	if cfg.IsTest() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogsDirectory, cfg.AppName+".log"),
		MaxSize:    cfg.LogsMaxSizeInMb,
		MaxBackups: cfg.LogsMaxBackups,
		MaxAge:     cfg.LogsMaxAgeInDays,
		Compress:   true,
	}

	out := io.MultiWriter(os.Stdout, rotated)
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func parseLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
