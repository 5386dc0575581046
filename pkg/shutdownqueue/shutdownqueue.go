// Package shutdownqueue is a process-wide LIFO queue of cleanup tasks.
// Register tasks anywhere with Add and drain them once at the end of main
// with Shutdown. Tasks run in reverse registration order, panics are
// recovered, and Shutdown is idempotent.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error if
// it cannot finish.
type Task func(ctx context.Context) error

var (
	mu     sync.Mutex
	tasks  []Task
	closed bool
)

// Add registers a task. A nil task, or an Add after shutdown has started,
// is a no-op.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if closed {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains all registered tasks in LIFO order. If ctx expires
// mid-drain, the remaining tasks are skipped and the context error is
// joined with any task errors collected so far.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	closed = true
	pending := tasks
	tasks = nil
	mu.Unlock()

	var errs []error

	for i := len(pending) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, pending[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
