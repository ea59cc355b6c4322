// Package logging builds the process logger.
//
// All log output goes to stderr; stdout is reserved for MCP traffic.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to out at the named level.
//
// Debug level always uses the text formatter with full timestamps so that
// stage narration stays readable; other levels use the requested format.
func New(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)

	switch {
	case lvl >= logrus.DebugLevel, strings.EqualFold(format, FormatText):
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	case strings.EqualFold(format, FormatJSON), format == "":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return logger, nil
}

// Component returns an entry tagged with the component name.
// A nil logger yields a discarding entry.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	if logger == nil {
		return Discard()
	}
	return logger.WithField("component", name)
}

// Discard returns an entry whose output is dropped. Tests and callers
// without a configured logger use it.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
