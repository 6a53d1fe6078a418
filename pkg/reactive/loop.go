package reactive

import (
	"context"
	"log/slog"
	"sync"
)

// Loop runs posted tasks one at a time on the goroutine that called Run.
// Post never blocks, so tasks may post follow-up tasks.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

type LoopOption func(*Loop)

func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues f for execution. It returns false once the loop is closed.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	l.mu.Lock()
	l.queue = append(l.queue, f)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Len reports the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run executes tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-l.wake:
			if !l.drain() {
				return
			}
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		}
	}
}

func (l *Loop) drain() bool {
	for {
		select {
		case <-l.done:
			return false
		default:
		}

		f := l.pop()
		if f == nil {
			return true
		}
		l.exec(f)
	}
}

func (l *Loop) pop() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	f := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return f
}

func (l *Loop) exec(f func()) {
	defer func() {
		if r := recover(); r != nil && l.logger != nil {
			l.logger.Error("loop task panic recovered", "panic", r)
		}
	}()
	f()
}

// Close stops the loop. Tasks still queued are discarded.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.done)
	})
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}
