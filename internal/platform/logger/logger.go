package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Type uint8

const (
	ConsoleLogger Type = iota
	JSONLogger
)

// Options for New.
type Options struct {
	Level zerolog.Level
	Type  Type
}

func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

func ParseType(t string) (Type, error) {
	switch strings.ToLower(t) {
	case "", "console":
		return ConsoleLogger, nil
	case "json":
		return JSONLogger, nil
	default:
		return ConsoleLogger, fmt.Errorf("unknown log format %q", t)
	}
}

// New returns a root logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	if opts.Type == ConsoleLogger {
		w = newConsoleWriter(w)
	}
	return zerolog.New(w).Level(opts.Level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the component name.
func Component(root zerolog.Logger, name string) zerolog.Logger {
	return root.With().Str("component", name).Logger()
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	return cw
}
