// Package concurrency provides the spawn/join primitives the indexing
// engine's parallel phases are built on.
//
// Two shapes recur throughout the pipeline:
//   - an unbounded two-way fan-out (ingesting parts and masterParts
//     concurrently), modeled by Group;
//   - a fan-out bounded to a fixed degree of parallelism (one worker per
//     suffix length, capped at the span of valid lengths), modeled by
//     Pool.
//
// Both are goroutine-based: OS thread scheduling is the Go runtime's
// concern, not this package's.
package concurrency

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Group joins an unbounded set of goroutines and reports the first error
// any of them returned, mirroring a simple create_thread/join_thread pair
// per task.
type Group struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	firstErr error
}

// Go spawns fn in its own goroutine.
func (g *Group) Go(fn func() error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(); err != nil {
			g.mu.Lock()
			if g.firstErr == nil {
				g.firstErr = err
			}
			g.mu.Unlock()
		}
	}()
}

// Wait blocks until every spawned goroutine has returned, then reports the
// first error observed, if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	return g.firstErr
}

// Pool bounds concurrent work to a fixed degree of parallelism using a
// weighted semaphore: one goroutine per suffix length, gated so at most n
// tasks run at once regardless of how many are queued. Calls to Go return
// at once; each task's goroutine waits until a slot is free.
type Pool struct {
	sem *semaphore.Weighted
	grp Group
}

// NewPool creates a pool that runs at most n tasks concurrently.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(n))}
}

// Go schedules fn to run once a slot is available. It does not block the
// caller: the task runs in its own goroutine, which acquires the
// semaphore first, and is joined by the subsequent Wait.
func (p *Pool) Go(fn func() error) {
	p.grp.Go(func() error {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			return err
		}
		defer p.sem.Release(1)
		return fn()
	})
}

// Wait blocks until every scheduled task has completed and returns the
// first error observed, if any.
func (p *Pool) Wait() error {
	return p.grp.Wait()
}
