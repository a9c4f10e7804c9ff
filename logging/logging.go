// Package logging builds the zerolog logger shared by every command
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects level and sinks
// Console is nil for the interactive viewer, where the terminal belongs to tcell
type Options struct {
	Level   string
	File    string
	Console io.Writer
}

// ParseLevel maps TRACE/DEBUG/INFO/WARN/ERROR, case-insensitive, to a zerolog level; unknown values are info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup returns the logger and a closer for the log file
// With neither a file nor a console the logger is disabled
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: time.RFC3339,
		})
	}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file %s: %w", opts.File, err)
		}
		closer = f
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	level := ParseLevel(opts.Level)
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	logger.Debug().Str("loglevel", level.String()).Msg("logging set up")
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
