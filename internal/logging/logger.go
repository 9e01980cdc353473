package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var globalLogger atomic.Pointer[zerolog.Logger]

// Setup configures the process-wide logger. format is "json" (default) or "console".
func Setup(level, format string) *zerolog.Logger {
	l := New(os.Stdout, level, format)
	globalLogger.Store(l)
	return l
}

// New builds a logger without touching the process-wide one.
func New(w io.Writer, level, format string) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &l
}

// L returns the process-wide logger, falling back to JSON at info level before Setup.
func L() *zerolog.Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	globalLogger.CompareAndSwap(nil, New(os.Stdout, "info", "json"))
	return globalLogger.Load()
}
