// Package sched implements a cooperative task driving bridge: a Pool
// drives a bounded number of goroutines through golang.org/x/sync/errgroup
// (errgroup.WithContext + SetLimit), collecting every job's result rather
// than failing fast on the first error.
package sched

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Kind names the host's own blocking caller (MainTask) versus a job
// scheduled onto the pool (Task). No gitwork or httpfetch operation takes
// or inspects a Kind: each runs on its caller's goroutine and calls its
// Progress callback there, so a Task caller that shows progress elsewhere
// publishes it through a Future itself.
type Kind int

const (
	// MainTask is the host's own blocking goroutine. A Job run under
	// MainTask calls its Progress callback inline.
	MainTask Kind = iota
	// Task is a job scheduled onto a Pool goroutine.
	Task
)

// Pool bounds how many jobs run concurrently via errgroup.Group.SetLimit.
type Pool struct {
	group *errgroup.Group
	ctx   context.Context
}

// NewPool creates a Pool whose jobs share ctx and run at most limit at a
// time. A non-positive limit means unbounded: SetLimit is then not called
// at all (errgroup.SetLimit itself treats only a negative limit as
// unbounded).
func NewPool(ctx context.Context, limit int) *Pool {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &Pool{group: g, ctx: gctx}
}

// Go schedules one job. Unlike errgroup's fail-fast default, job failures
// are collected rather than abandoning sibling jobs: Wait reports the
// first error but every scheduled job still runs to completion.
func (p *Pool) Go(job func(ctx context.Context) error) {
	p.group.Go(func() error {
		err := job(p.ctx)
		if err != nil {
			return err
		}
		return nil
	})
}

// Wait blocks until every scheduled job has returned, and reports the
// first error encountered (if any). Per documented limitation, Wait
// does not cancel sibling jobs on a single job's failure beyond whatever
// context cancellation the caller itself wired up; the errgroup's derived
// context is canceled when any job returns an error, but already-running
// jobs observe that cancellation cooperatively rather than being forced to
// stop.
func (p *Pool) Wait() error {
	return p.group.Wait()
}

// Future publishes a Progress-style snapshot from a Task goroutine to a
// MainTask reader without a data race, the Go substitute for "yield to the
// host scheduler and resume later with a result." A zero Future is ready
// to use.
type Future[T any] struct {
	mu    sync.Mutex
	value T
	done  bool
	ch    chan struct{}
	once  sync.Once
}

func (f *Future[T]) init() {
	f.once.Do(func() { f.ch = make(chan struct{}) })
}

// Publish records the latest snapshot. Safe to call repeatedly; only the
// last call before Resolve matters to a reader using Peek.
func (f *Future[T]) Publish(v T) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
}

// Peek returns the most recently published value without blocking.
func (f *Future[T]) Peek() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Resolve marks the future done and wakes any goroutine blocked in Wait.
func (f *Future[T]) Resolve(v T) {
	f.init()
	f.mu.Lock()
	f.value = v
	if !f.done {
		f.done = true
		close(f.ch)
	}
	f.mu.Unlock()
}

// Wait blocks until Resolve is called or ctx is done, then returns the
// resolved value.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	f.init()
	select {
	case <-f.ch:
		return f.Peek(), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
