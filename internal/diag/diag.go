// Package diag provides the diagnostic logger. The TUI owns the terminal, so
// diagnostics (telemetry fetch failures, logout errors) go to a file instead
// of stderr; they are never shown to the user.
package diag

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Open returns a file-backed logger. If the file cannot be opened the logger
// discards everything — diagnostics are best-effort and must never take the
// app down.
func Open(path string) *log.Logger {
	var w io.Writer = io.Discard
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			w = f
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "voltboard",
	})
}
