// Package logging defines the structured logger collaborator used
// across the optimization engine: key-value pairs at info/warning/error
// severity. Backed by github.com/hashicorp/go-hclog, a dependency
// already present in the retrieval pack (felixgeelhaar-orbita wires it
// as a slog adapter for its plugin boundary); promoted here to be the
// core logger directly, since its leveled Info/Warn/Error plus
// structured key-value args are exactly what this engine needs.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger is the structured logging collaborator. Implementations must
// be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	With(args ...interface{}) Logger
}

type hclogLogger struct {
	l hclog.Logger
}

// New builds a Logger writing JSON lines to w at the given level
// ("trace", "debug", "info", "warn", "error"). An empty level defaults
// to "info".
func New(w io.Writer, level string) Logger {
	if level == "" {
		level = "info"
	}
	l := hclog.New(&hclog.LoggerOptions{
		Name:       "taskdog",
		Level:      hclog.LevelFromString(level),
		Output:     w,
		JSONFormat: true,
	})
	return &hclogLogger{l: l}
}

// NewStderr builds a Logger writing to os.Stderr, the default sink for
// CLI invocations.
func NewStderr(level string) Logger {
	return New(os.Stderr, level)
}

// Noop returns a Logger that discards everything, used in tests that
// don't assert on log output.
func Noop() Logger {
	return &hclogLogger{l: hclog.NewNullLogger()}
}

func (h *hclogLogger) Info(msg string, args ...interface{})  { h.l.Info(msg, args...) }
func (h *hclogLogger) Warn(msg string, args ...interface{})  { h.l.Warn(msg, args...) }
func (h *hclogLogger) Error(msg string, args ...interface{}) { h.l.Error(msg, args...) }
func (h *hclogLogger) Debug(msg string, args ...interface{}) { h.l.Debug(msg, args...) }

func (h *hclogLogger) With(args ...interface{}) Logger {
	return &hclogLogger{l: h.l.With(args...)}
}
