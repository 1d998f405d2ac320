package app

import (
	"log/slog"

	"github.com/treykane/dyntext/internal/logging"
)

// appLog is the package-level structured logger for the demo composer.
//
// The log level is controlled by the DYNTEXT_LOG_LEVEL environment variable
// (see the logging package). Output goes to stderr unless cmd/dyntext
// redirects it, so it does not interfere with the terminal UI on stdout.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while the err and any
// additional key-value attrs are included only in the log entry.
//
// Usage:
//
//	m.setStatusError("Clipboard copy failed", err)
//	m.setStatusError("Draft save failed", err, "path", m.draftPath)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
