package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/alexliesenfeld/health"
)

var (
	errLoopNotRunning = errors.New("dispatch loop is not running")
	errLoopSaturated  = errors.New("dispatch loop queue is full")
)

func (a *App) healthCheck() Controller {
	checker := health.NewChecker(
		// Set a TTL of 1 second for the results of the checks.
		health.WithCacheDuration(1*time.Second),

		// Set a timeout of 2 seconds for the checks.
		health.WithTimeout(2*time.Second),

		// Monitor the loop every ticket operation runs on.
		health.WithCheck(health.Check{
			Name:    "Dispatch_Loop",
			Check:   dispatchLoopCheck(a.loop),
			Timeout: time.Second,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				a.Log().Info("Dispatch loop health check status changed",
					slog.String("name", name),
					slog.String("state", string(state.Status)),
				)
			},
		}),

		// Monitor the health of the Discord API.
		health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "Discord_API",
			Check: func(ctx context.Context) error {
				if _, err := a.s.GatewayBot(); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout: 3 * time.Second,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				a.Log().Info("Discord API health check status changed",
					slog.String("name", name),
					slog.String("state", string(state.Status)),
				)
			},
		}),
	)

	return Controller(health.NewHandler(checker))
}

// loopState is what the health check needs from the dispatch loop.
type loopState interface {
	Running() bool
	Pending() int
	Capacity() int
}

var _ loopState = (*dispatch.Loop)(nil)

func dispatchLoopCheck(lp loopState) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if !lp.Running() {
			return errLoopNotRunning
		}
		if lp.Pending() >= lp.Capacity() {
			return fmt.Errorf("%w: %d tasks pending", errLoopSaturated, lp.Pending())
		}
		return nil
	}
}
