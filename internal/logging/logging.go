// Package logging provides the shared structured logger for dyntext.
//
// It wraps the standard library's [log/slog] package with a single
// initialization point so the editor component, the demo app and the
// configuration loader all write through the same handler and level. The
// level is read once from the DYNTEXT_LOG_LEVEL environment variable (debug,
// info, warn, error) and defaults to WARN, so a host embedding the editor
// sees nothing unless it asks for it.
//
// Usage:
//
//	log := logging.New("editor")
//	log.Debug("height changed", "from", 1, "to", 3)
//
// Output goes to stderr so it never mixes with the Bubble Tea view on
// stdout. SetOutput redirects it, which the demo uses to log to a file while
// the terminal is in the alternate screen.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelEnv is the environment variable that selects the log level.
const LevelEnv = "DYNTEXT_LOG_LEVEL"

var (
	mu     sync.Mutex
	level  = new(slog.LevelVar)
	output io.Writer

	// initLogger guards the lazy creation of baseLogger.
	initLogger sync.Once

	// baseLogger forwards to the current handler; component loggers derived
	// from it keep working after SetOutput swaps the writer.
	baseLogger *slog.Logger
)

// New returns a logger scoped to component. The component name is attached
// to every entry as the "component" attribute. An empty component returns
// the base logger.
func New(component string) *slog.Logger {
	ensureInit()
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// SetOutput redirects all loggers to w. A nil w restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel overrides the level read from DYNTEXT_LOG_LEVEL.
func SetLevel(l slog.Level) {
	ensureInit()
	level.Set(l)
}

func ensureInit() {
	initLogger.Do(func() {
		level.Set(parseLevel(os.Getenv(LevelEnv)))
		baseLogger = slog.New(&switchHandler{})
	})
}

// ParseLevel converts a level name to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "info"            → slog.LevelInfo
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelWarn (the default)
func ParseLevel(value string) slog.Level {
	return parseLevel(value)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func currentOutput() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if output == nil {
		return os.Stderr
	}
	return output
}
