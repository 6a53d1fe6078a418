// Package debounce produces a lagged copy of a reactive value that only
// follows its source once the source has been quiet for a delay.
package debounce

import (
	"sync"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/reactive"
)

const DefaultDelay = 100 * time.Millisecond

type config struct {
	clock    reactive.Clock
	dispatch func(func())
}

type Option func(*config)

func WithClock(c reactive.Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// WithDispatcher sets how a timer fire is handed back to the goroutine that
// owns the values, typically (*reactive.Loop).Post. Without it the commit
// runs on the timer goroutine, so subscribers of the output must tolerate
// being called from there.
func WithDispatcher(dispatch func(func())) Option {
	return func(cfg *config) {
		cfg.dispatch = dispatch
	}
}

type Debounced[T comparable] struct {
	src      *reactive.Value[T]
	out      *reactive.Value[T]
	delay    time.Duration
	clock    reactive.Clock
	dispatch func(func())

	// mu guards the scheduling state below; commitMu orders writes to out.
	mu       sync.Mutex
	commitMu sync.Mutex
	timer    reactive.Timer
	gen      uint64
	unsub    func()
	closed   bool
}

// New subscribes to src. The output starts at src's current value.
func New[T comparable](src *reactive.Value[T], delay time.Duration, opts ...Option) *Debounced[T] {
	cfg := config{
		clock:    reactive.SystemClock{},
		dispatch: func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if delay < 0 {
		delay = 0
	}

	d := &Debounced[T]{
		src:      src,
		out:      reactive.NewValue(src.Get()),
		delay:    delay,
		clock:    cfg.clock,
		dispatch: cfg.dispatch,
	}
	d.unsub = src.Subscribe(d.schedule)
	return d
}

func (d *Debounced[T]) Value() *reactive.Value[T] {
	return d.out
}

func (d *Debounced[T]) Delay() time.Duration {
	return d.delay
}

// Pending reports whether a commit is scheduled.
func (d *Debounced[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debounced[T]) schedule(latest T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopTimer()

	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.dispatch(func() {
			d.commit(gen, latest)
		})
	})
}

// commit ignores fires that were superseded after the timer had already
// gone off but before the dispatcher ran them. commitMu is taken before mu
// and the output is written outside mu, so subscribers may write the source.
func (d *Debounced[T]) commit(gen uint64, latest T) {
	d.commitMu.Lock()
	defer d.commitMu.Unlock()

	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.out.Set(latest)
}

func (d *Debounced[T]) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Close cancels any pending commit and detaches from the source.
func (d *Debounced[T]) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.gen++
	d.stopTimer()
	unsub := d.unsub
	d.unsub = nil
	d.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
