// Package eventloop runs posted callbacks on a single goroutine.
package eventloop

import (
	"context"
	"sync"
)

// Loop is a cooperative event loop.
// Callbacks run one at a time, in the order they were posted, on the goroutine calling Run.
// Work happening elsewhere, such as a running child process, keeps the loop alive
// through Hold and Release.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	holds int
	wake  chan struct{}
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn. It is safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
}

// Hold registers outstanding work that will post back later.
func (l *Loop) Hold() {
	l.mu.Lock()
	l.holds++
	l.mu.Unlock()
}

// Release ends a Hold.
func (l *Loop) Release() {
	l.mu.Lock()
	if l.holds > 0 {
		l.holds--
	}
	l.mu.Unlock()
	l.signal()
}

// Idle reports whether nothing is queued or held.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) == 0 && l.holds == 0
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) next() (fn func(), idle bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) > 0 {
		fn = l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		return fn, false
	}
	return nil, l.holds == 0
}

// Run executes callbacks until the loop is idle.
// Cancelling ctx does not abandon queued callbacks: holders are expected to observe
// ctx themselves, finish, and post their results, which Run still delivers.
// Run returns ctx.Err() if ctx was cancelled by the time the loop went idle.
func (l *Loop) Run(ctx context.Context) error {
	for {
		fn, idle := l.next()
		if fn != nil {
			fn()
			continue
		}
		if idle {
			return ctx.Err()
		}
		<-l.wake
	}
}
