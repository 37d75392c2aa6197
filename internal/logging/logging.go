// Package logging configures the process-wide phuslu/log logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// ParseLevel maps a config level name to a log level; unknown names are info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New builds a logger writing to w. format "json" emits one JSON object
// per line; anything else uses the console writer.
func New(w io.Writer, level, format string) log.Logger {
	var writer log.Writer
	if strings.EqualFold(format, "json") {
		writer = &log.IOWriter{Writer: w}
	} else {
		color := false
		if f, ok := w.(*os.File); ok {
			color = log.IsTerminal(f.Fd())
		}
		writer = &log.ConsoleWriter{Writer: w, ColorOutput: color, QuoteString: true, EndWithMessage: true}
	}
	return log.Logger{
		Level:      ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer:     writer,
	}
}

// Setup installs the default logger, writing to stderr.
func Setup(level, format string) {
	log.DefaultLogger = New(os.Stderr, level, format)
}
