// Package mainloop provides the single-threaded task loop every chrome
// mutation runs on, plus helpers for scheduling work onto it.
package mainloop

import (
	"context"
	"sync"
)

// Loop is a FIFO task queue drained by exactly one goroutine.
// Post may be called from any goroutine; RunPending, RunUntil and Run must
// only be called from the goroutine that owns the loop.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. Work posted after Close is dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending runs queued tasks until the queue is empty, including tasks
// posted by the tasks it runs. It returns how many tasks ran.
func (l *Loop) RunPending() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// RunUntil processes tasks until done is closed or ctx ends.
// A nil done channel runs until ctx ends.
func (l *Loop) RunUntil(ctx context.Context, done <-chan struct{}) error {
	for {
		l.RunPending()

		select {
		case <-done:
			l.RunPending()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Run processes tasks until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	return l.RunUntil(ctx, nil)
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Close drops queued work and rejects further posts.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
}
