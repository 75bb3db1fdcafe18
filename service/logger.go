package service

import (
	"io"
	"log/slog"
	"os"
)

// LogTimeFormat is the timestamp layout of every log line
const LogTimeFormat = "2006-01-02 15:04:05.000"

// NewLogger creates the text logger used for operational messages.
// Messages go to w (stderr when nil) at Info level, or Debug when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(LogTimeFormat))
			}
			return a
		},
	})
	return slog.New(handler)
}

// NewDiscardLogger returns a logger that drops every record
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewDiscardLogger()
	}
	return logger
}
