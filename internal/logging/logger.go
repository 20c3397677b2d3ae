package logging

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/rebrand/internal/storage"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Log levels - aliases for zerolog levels
const (
	ErrorLevel = zerolog.ErrorLevel
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
	TraceLevel = zerolog.TraceLevel
)

// Config defines the configuration for logger creation
type Config struct {
	Writer io.Writer
	// Fallback receives plain console output when the rotating log file
	// cannot be set up. Without it New returns the error.
	Fallback io.Writer
	Root     string
	Level    zerolog.Level
	// DryRun is stamped on every entry so dry runs are told apart in the shared log file.
	DryRun bool
}

// New creates a new context with a logger attached
// For production: provide fs and leave Writer nil for rotating file logging
// For tests: provide a custom Writer (like strings.Builder) for in-memory logging
func New(ctx context.Context, fs afero.Fs, config Config) (context.Context, error) {
	writer, sinkErr := resolveWriter(fs, config)
	if sinkErr != nil {
		if config.Fallback == nil {
			return nil, sinkErr
		}
		writer = zerolog.ConsoleWriter{Out: config.Fallback, NoColor: true}
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Str("root", config.Root).
		Bool("dry_run", config.DryRun).
		Logger().
		Level(config.Level)

	if sinkErr != nil {
		logger.Warn().Err(sinkErr).Msg("log file unavailable, logging to console")
	}

	return logger.WithContext(ctx), nil
}

func resolveWriter(fs afero.Fs, config Config) (io.Writer, error) {
	if config.Writer != nil {
		return config.Writer, nil
	}
	if fs == nil {
		return nil, errors.New("filesystem required when no writer provided")
	}

	logFile, err := storage.New(fs).GetLogPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get log path: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}, nil
}

// Get retrieves the logger from the provided context
// Returns the logger associated with the context, or a disabled logger if none exists
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ParseLevel converts a level name to a zerolog level, defaulting to info for an empty string.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return InfoLevel, fmt.Errorf("invalid log level '%s': %w", name, err)
	}
	return level, nil
}
