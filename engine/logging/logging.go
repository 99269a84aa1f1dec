// Package logging builds the zerolog logger every other package receives.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/config"
)

// ParseLevel converts a config level name, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the program logger writing to out and, when cfg.File is set,
// to that file without colours. The returned close func releases the file.
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, func() error, error) {
	if out == nil {
		out = os.Stderr
	}
	json := strings.EqualFold(cfg.Format, "json")

	writers := []io.Writer{console(out, json, false)}
	closeFn := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, console(f, json, true))
		closeFn = f.Close
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Logger()
	return log, closeFn, nil
}

func console(w io.Writer, json, noColor bool) io.Writer {
	if json {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}
