package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultQueueSize is the queue size used when none is configured.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned when the loop has too many pending tasks to accept another.
	ErrQueueFull = errors.New("dispatch queue is full")

	// ErrLoopClosed is returned when the loop no longer accepts or runs tasks.
	ErrLoopClosed = errors.New("dispatch loop is closed")
)

// Task is a unit of work that runs on the loop.
type Task func(ctx context.Context) error

type job struct {
	task   Task
	future *Future
}

// Loop runs tasks one at a time, in submission order, on a single goroutine. Everything that
// mutates ticket or platform state runs through it, which makes it the only writer.
type Loop struct {
	l *slog.Logger

	// mu guards closed and sends on jobs, so that Close never races a Submit.
	mu     sync.RWMutex
	closed bool
	jobs   chan *job

	running  atomic.Bool
	stopped  chan struct{}
	stopOnce sync.Once
}

// PanicError is the error recorded for a task that panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// NewLoop creates a new loop that holds up to size pending tasks.
func NewLoop(l *slog.Logger, size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}

	return &Loop{
		l:       l.With(slog.String("component", "dispatch_loop")),
		jobs:    make(chan *job, size),
		stopped: make(chan struct{}),
	}
}

// Submit schedules the task and returns straight away. It is safe to call from any goroutine.
// Failures of the task itself are logged by the loop and recorded on the future.
func (lp *Loop) Submit(name string, t Task) (*Future, error) {
	lp.mu.RLock()
	defer lp.mu.RUnlock()

	if lp.closed {
		TotalTasks.WithLabelValues(name, outcomeRejected).Inc()
		return nil, ErrLoopClosed
	}

	j := &job{
		task:   t,
		future: newFuture(name),
	}

	select {
	case lp.jobs <- j:
		QueueDepth.Inc()
		lp.l.Debug("Task scheduled",
			slog.String("task", name),
			slog.String(logging.KeyTask, j.future.ID()),
		)
		return j.future, nil
	default:
		TotalTasks.WithLabelValues(name, outcomeRejected).Inc()
		return nil, ErrQueueFull
	}
}

// Run executes tasks until the loop is closed and drained, or ctx is done. Tasks that are still
// pending when ctx is done are dropped with ErrLoopClosed.
func (lp *Loop) Run(ctx context.Context) error {
	if !lp.running.CompareAndSwap(false, true) {
		return errors.New("dispatch loop is already running")
	}
	defer lp.stopOnce.Do(func() { close(lp.stopped) })
	defer lp.running.Store(false)

	lp.l.Info("Dispatch loop started")

	for {
		select {
		case <-ctx.Done():
			lp.Close()
			lp.drop()
			lp.l.Info("Dispatch loop stopped", slog.String(logging.KeyError, ctx.Err().Error()))
			return ctx.Err()
		case j, ok := <-lp.jobs:
			if !ok {
				lp.l.Info("Dispatch loop drained")
				return nil
			}
			QueueDepth.Dec()
			lp.execute(ctx, j)
		}
	}
}

// Close stops the loop from accepting tasks. Tasks already accepted still run.
func (lp *Loop) Close() {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if lp.closed {
		return
	}
	lp.closed = true
	close(lp.jobs)
}

// Stopped is closed once Run has returned.
func (lp *Loop) Stopped() <-chan struct{} {
	return lp.stopped
}

// Running reports whether Run is executing.
func (lp *Loop) Running() bool {
	return lp.running.Load()
}

// Pending returns the number of tasks waiting to run.
func (lp *Loop) Pending() int {
	return len(lp.jobs)
}

// Capacity returns the maximum number of pending tasks.
func (lp *Loop) Capacity() int {
	return cap(lp.jobs)
}

func (lp *Loop) execute(ctx context.Context, j *job) {
	name := j.future.Name()
	l := lp.l.With(
		slog.String("task", name),
		slog.String(logging.KeyTask, j.future.ID()),
	)

	t := prometheus.NewTimer(TaskDuration.WithLabelValues(name))
	defer t.ObserveDuration()

	start := time.Now()
	err := lp.safeRun(ctx, j.task)
	pe := new(PanicError)
	switch {
	case errors.As(err, &pe):
		l.Error("Task panicked", slog.String(logging.KeyError, err.Error()))
		TotalTasks.WithLabelValues(name, outcomePanic).Inc()
	case err != nil:
		l.Error("Task failed", slog.String(logging.KeyError, err.Error()))
		TotalTasks.WithLabelValues(name, outcomeError).Inc()
	default:
		l.Debug("Task completed", slog.Duration("took", time.Since(start)))
		TotalTasks.WithLabelValues(name, outcomeSuccess).Inc()
	}

	j.future.complete(err)
}

func (lp *Loop) safeRun(ctx context.Context, t Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			lp.l.Debug("Recovered task panic", slog.String("stack", string(debug.Stack())))
			err = &PanicError{Value: rec}
		}
	}()
	return t(ctx)
}

// drop fails every task that is still queued. The queue is closed by then.
func (lp *Loop) drop() {
	for j := range lp.jobs {
		QueueDepth.Dec()
		TotalTasks.WithLabelValues(j.future.Name(), outcomeDropped).Inc()
		j.future.complete(ErrLoopClosed)
	}
}
