// Package loop implements a minimal single-threaded event loop: callbacks
// scheduled during a turn run on the next turn.
package loop

import (
	"context"
	"sync"
)

// Task is a handle to a scheduled callback. Its only use is telling whether
// something is scheduled already.
type Task struct {
	fn func()
}

// Loop is a FIFO queue of deferred callbacks. Schedule may be called from
// any goroutine, turns must be driven by a single goroutine.
type Loop struct {
	mu      sync.Mutex
	pending []*Task
	wake    chan struct{}
}

// New creates empty loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Schedule queues fn to run on the next turn of the loop (zero delay
// deferred callback).
func (l *Loop) Schedule(fn func()) *Task {
	t := &Task{fn: fn}

	l.mu.Lock()
	l.pending = append(l.pending, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return t
}

// Pending returns number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Turn runs tasks queued before the call, in order. Tasks scheduled by them
// are left for the next turn. Returns number of callbacks executed.
func (l *Loop) Turn() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, t := range batch {
		t.fn()
	}
	return len(batch)
}

// Drain runs turns until queue is empty.
func (l *Loop) Drain() {
	for l.Pending() > 0 {
		l.Turn()
	}
}

// Run executes turns as tasks arrive until context is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Turn()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
