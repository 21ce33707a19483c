// Package lifecycle provides the exit stack that owns process-scoped
// resources, and wrapper functions that time command execution and report
// completion.
//
// The wrappers are intentionally minimal: no event bus, no goroutines. Each
// captures the start time, executes the provided function, calculates the
// duration, and calls the completion handler.
package lifecycle

import (
	"context"
	"log/slog"
	"time"
)

// CompletionHandler receives command completion reports.
//
// Implementations must be safe for nil receivers. The wrapper functions
// check for a nil interface before calling any method.
type CompletionHandler interface {
	// OnCommandComplete is called when a command finishes execution.
	// Parameters:
	//   - name: the command name (e.g., "configuration", "directories")
	//   - success: true if command completed without error
	//   - duration: how long the command took to execute
	OnCommandComplete(name string, success bool, duration time.Duration)
}

// Run executes fn and reports its outcome to handler.
func Run(handler CompletionHandler, name string, fn func() error) error {
	return RunWithContext(context.Background(), handler, name, func(context.Context) error {
		return fn()
	})
}

// RunWithContext executes fn with ctx and reports its outcome to handler.
// The error from fn is returned unchanged.
func RunWithContext(ctx context.Context, handler CompletionHandler, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if handler != nil {
		handler.OnCommandComplete(name, err == nil, time.Since(start))
	}
	return err
}

// LogHandler reports completions through a structured logger at debug level.
type LogHandler struct {
	Logger *slog.Logger
}

// OnCommandComplete implements CompletionHandler.
func (h *LogHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	if h == nil {
		return
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("command complete",
		slog.String("command", name),
		slog.Bool("success", success),
		slog.Duration("duration", duration))
}
