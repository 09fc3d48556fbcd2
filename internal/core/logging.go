package core

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger returns a text logger when f is a terminal and a JSON logger
// otherwise, so piped runs produce machine-readable step logs.
func NewLogger(f *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(f, opts))
	}
	return slog.New(slog.NewJSONHandler(f, opts))
}
