// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup applies level and format to the standard logger. debug forces the
// debug level regardless of level.
func Setup(level, format string, debug bool) error {
	return configure(log.StandardLogger(), os.Stderr, level, format, debug)
}

// Validate checks level and format without touching the standard logger.
func Validate(level, format string) error {
	return configure(log.New(), io.Discard, level, format, false)
}

func configure(l *log.Logger, out io.Writer, level, format string, debug bool) error {
	l.SetOutput(out)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		l.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log format: %q (use text|json)", format)
	}
	if debug {
		l.SetLevel(log.DebugLevel)
		return nil
	}
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	l.SetLevel(lvl)
	return nil
}
