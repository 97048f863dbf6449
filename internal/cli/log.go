package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: text lines with "15:04:05.00"
// timestamps on w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// useJSONLogs switches l to one JSON object per line, for log collectors
// in front of `keyplate serve`.
func useJSONLogs(l *log.Logger) {
	l.SetFormatter(log.JSONFormatter)
	l.SetTimeFormat(time.RFC3339)
}

// progress times one CLI step.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) progress {
	return progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Wrote 4 files (12ms)".
func (p progress) done(msg string) {
	p.logger.Info(msg, "took", time.Since(p.start).Round(time.Millisecond))
}
