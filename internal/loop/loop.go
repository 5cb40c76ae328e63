// Package loop marshals work from background goroutines onto the UI goroutine.
package loop

import "sync"

// Poster schedules fn to run on the UI goroutine.
type Poster interface {
	Post(fn func())
}

// Loop is a FIFO queue of closures drained once per frame by the game loop.
// Post is safe from any goroutine; Drain must only be called from the loop.
type Loop struct {
	mu      sync.Mutex
	pending []func()
}

func New() *Loop {
	return &Loop{}
}

func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

// Drain runs every closure queued before the call and returns how many ran.
// Closures posted while draining wait for the next Drain.
func (l *Loop) Drain() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
