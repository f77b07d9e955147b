package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs completion of an operation with the elapsed duration.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func newStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Parser finished (1.234s)".
func (s *stopwatch) done(msg string) {
	s.logger.Infof("%s (%s)", msg, time.Since(s.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or a discarding logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.New(io.Discard)
}
