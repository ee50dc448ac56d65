package dispatch

import (
	"context"

	"github.com/google/uuid"
)

// Future is the handle of a submitted task. Callers may wait on it or drop it.
type Future struct {
	id   uuid.UUID
	name string
	done chan struct{}
	err  error
}

func newFuture(name string) *Future {
	return &Future{
		id:   uuid.New(),
		name: name,
		done: make(chan struct{}),
	}
}

// ID is the unique ID of the task, it is attached to every log line about the task.
func (f *Future) ID() string {
	return f.id.String()
}

// Name is the name the task was submitted with.
func (f *Future) Name() string {
	return f.name
}

// Done is closed once the task has finished or has been dropped.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the error of the task. It is only meaningful once Done is closed.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the task has finished or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Future) complete(err error) {
	f.err = err
	close(f.done)
}
