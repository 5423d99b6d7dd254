// Package executor runs lookup tasks off the caller's goroutine.
package executor

import "golang.org/x/sync/errgroup"

// Executor submits independent units of work and waits for them to drain.
// Tasks are not cancellable once submitted; a task that outlives its trigger
// still runs to completion and delivers its outcome.
type Executor struct {
	g errgroup.Group
}

// New returns an executor running at most limit tasks at once. limit <= 0
// means unbounded.
func New(limit int) *Executor {
	e := &Executor{}
	if limit > 0 {
		e.g.SetLimit(limit)
	}
	return e
}

// Go schedules fn on a worker goroutine.
func (e *Executor) Go(fn func()) {
	e.g.Go(func() error {
		fn()
		return nil
	})
}

// Wait blocks until every submitted task has finished.
func (e *Executor) Wait() { _ = e.g.Wait() }
