// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/prmf/premium-api/internal/platform/logging"
)

// DefaultDetachTimeout bounds detached tasks so they cannot linger after
// the originating request has been answered.
const DefaultDetachTimeout = 10 * time.Second

// Detach runs fn on its own goroutine, decoupled from the request lifecycle:
// the caller never awaits completion, and cancellation of the inbound
// request does not cancel fn. Failures and panics are logged, never
// propagated — this is the dispatch-and-ignore primitive behind best-effort
// side effects like the quote history write.
func Detach(ctx context.Context, name string, timeout time.Duration, fn func(context.Context) error) {
	logger := logging.FromContext(ctx).With(slog.String("task", name))

	if timeout <= 0 {
		timeout = DefaultDetachTimeout
	}

	// Detach from the request's cancellation but keep its values
	// (request_id, trace context) for diagnostics.
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("detached task panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		taskCtx, cancel := context.WithTimeout(bgCtx, timeout)
		defer cancel()

		if err := fn(taskCtx); err != nil {
			logger.Error("detached task failed", slog.Any("error", err))
			return
		}

		logger.Debug("detached task completed")
	}()
}
