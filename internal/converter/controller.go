package converter

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/debounce"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/reactive"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/pkg/errors"
)

const settlePoll = 10 * time.Millisecond

var (
	ErrInvalidControllerConfig = errors.New("invalid converter controller config")
	ErrAlreadyStarted          = errors.New("controller already started")
	ErrStopped                 = errors.New("controller stopped")
)

// Recorder observes every conversion request the controller issues.
type Recorder interface {
	RecordConversion(req convert.Request, res convert.Result, err error)
}

type Controller struct {
	ctx       context.Context
	logger    *slog.Logger
	lister    convert.CurrencyLister
	converter convert.Converter
	recorder  Recorder
	delay     time.Duration
	clock     reactive.Clock
	onChange  func(Snapshot)

	loop    *reactive.Loop
	runCtx  context.Context
	cancel  context.CancelFunc
	started atomic.Bool
	stop    sync.Once

	amount *reactive.Value[string]
	symbol *reactive.Value[string]
	target *reactive.Value[string]

	settledAmount *debounce.Debounced[string]
	settledSymbol *debounce.Debounced[string]
	settledTarget *debounce.Debounced[string]

	// owned by the loop goroutine
	cryptos     []convert.Currency
	listState   ListState
	converted   *string
	loading     bool
	seq         uint64
	evalQueued  bool
	unsubscribe []func()

	snapshot atomic.Pointer[Snapshot]
}

type Option func(*Controller)

func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func WithLister(l convert.CurrencyLister) Option {
	return func(c *Controller) {
		c.lister = l
	}
}

func WithConverter(cv convert.Converter) Option {
	return func(c *Controller) {
		c.converter = cv
	}
}

// WithClient uses one remote client for both the list and conversions.
func WithClient(cl convert.Client) Option {
	return func(c *Controller) {
		c.lister = cl
		c.converter = cl
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

func WithClock(clock reactive.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithOnChange registers a callback run on the loop goroutine after every
// state change. It must not block.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

func (c *Controller) IsValid() error {
	switch {
	case c.ctx == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "ctx cannot be nil")
	case c.logger == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "logger cannot be nil")
	case c.lister == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "currency lister cannot be nil")
	case c.converter == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "converter cannot be nil")
	case c.clock == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "clock cannot be nil")
	case c.delay < 0:
		return errors.Wrap(ErrInvalidControllerConfig, "delay cannot be negative")
	default:
		return nil
	}
}

func NewController(opts ...Option) (*Controller, error) {
	c := &Controller{
		delay: debounce.DefaultDelay,
		clock: reactive.SystemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.IsValid(); err != nil {
		return nil, err
	}

	c.loop = reactive.NewLoop(reactive.WithLoopLogger(c.logger))

	c.amount = reactive.NewValue("")
	c.symbol = reactive.NewValue(convert.DefaultSymbol)
	c.target = reactive.NewValue(convert.DefaultConvert)

	dopts := []debounce.Option{
		debounce.WithClock(c.clock),
		debounce.WithDispatcher(func(f func()) { c.loop.Post(f) }),
	}
	c.settledAmount = debounce.New(c.amount, c.delay, dopts...)
	c.settledSymbol = debounce.New(c.symbol, c.delay, dopts...)
	c.settledTarget = debounce.New(c.target, c.delay, dopts...)

	for _, settled := range []*debounce.Debounced[string]{c.settledAmount, c.settledSymbol, c.settledTarget} {
		c.unsubscribe = append(c.unsubscribe, settled.Value().Subscribe(func(string) {
			c.scheduleEvaluate()
		}))
	}

	c.store()
	return c, nil
}

// Start mounts the controller: it starts the loop, loads the currency list
// once and evaluates the initial form state.
func (c *Controller) Start() error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	select {
	case <-c.loop.Done():
		return ErrStopped
	default:
	}

	c.runCtx, c.cancel = context.WithCancel(c.ctx)
	go c.loop.Run(c.runCtx)

	if !c.loop.Post(c.mount) {
		c.cancel()
		return ErrStopped
	}
	return nil
}

// Stop unmounts the controller. Pending debounce timers are cancelled and
// late network completions are ignored.
func (c *Controller) Stop() {
	c.stop.Do(func() {
		if c.started.Load() {
			done := make(chan struct{})
			if c.loop.Post(func() {
				c.teardown()
				close(done)
			}) {
				select {
				case <-done:
				case <-c.loop.Done():
				}
			}
		} else {
			c.teardown()
		}

		c.loop.Close()
		if c.cancel != nil {
			c.cancel()
		}
	})
}

func (c *Controller) teardown() {
	for _, unsub := range c.unsubscribe {
		unsub()
	}
	c.unsubscribe = nil
	c.settledAmount.Close()
	c.settledSymbol.Close()
	c.settledTarget.Close()
}

func (c *Controller) SetAmount(v string) {
	c.set(c.amount, v)
}

func (c *Controller) SetSymbol(v string) {
	c.set(c.symbol, v)
}

func (c *Controller) SetConvert(v string) {
	c.set(c.target, v)
}

func (c *Controller) set(field *reactive.Value[string], v string) {
	c.loop.Post(func() {
		if field.Set(v) {
			c.emit()
		}
	})
}

func (c *Controller) Snapshot() Snapshot {
	return *c.snapshot.Load()
}

func (c *Controller) Delay() time.Duration {
	return c.delay
}

// Flush waits until the loop has run every queued task, including tasks
// queued by those tasks. Network calls still in flight are not awaited.
func (c *Controller) Flush(ctx context.Context) error {
	done := make(chan struct{})
	var check func()
	check = func() {
		if c.loop.Len() > 0 || c.evalQueued {
			c.loop.Post(check)
			return
		}
		close(done)
	}
	if !c.loop.Post(check) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-c.loop.Done():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Settle waits until every edit has settled and the conversion it triggered
// has completed.
func (c *Controller) Settle(ctx context.Context) error {
	ticker := time.NewTicker(settlePoll)
	defer ticker.Stop()

	for {
		if err := c.Flush(ctx); err != nil {
			return err
		}

		idle := make(chan bool, 1)
		if !c.loop.Post(func() {
			idle <- !c.loading && !c.evalQueued &&
				!c.settledAmount.Pending() && !c.settledSymbol.Pending() && !c.settledTarget.Pending()
		}) {
			return ErrStopped
		}

		select {
		case ok := <-idle:
			if ok {
				return nil
			}
		case <-c.loop.Done():
			return ErrStopped
		case <-ctx.Done():
			return ctx.Err()
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Controller) mount() {
	c.loadCurrencies()
	c.evaluate()
}

func (c *Controller) loadCurrencies() {
	c.listState = ListLoading
	c.emit()

	ctx := c.runCtx
	go func() {
		list, err := c.lister.TopCryptos(ctx)
		c.loop.Post(func() {
			if err != nil {
				c.logger.Error("failed to load currency list", "error", err)
				c.listState = ListFailed
				c.emit()
				return
			}
			c.cryptos = list
			c.listState = ListLoaded
			c.logger.Debug("loaded currency list", "count", len(list))
			c.emit()
		})
	}()
}

// scheduleEvaluate coalesces settlements that land in the same loop turn
// into a single evaluation.
func (c *Controller) scheduleEvaluate() {
	if c.evalQueued {
		return
	}
	c.evalQueued = true
	c.loop.Post(func() {
		c.evalQueued = false
		c.evaluate()
	})
}

func (c *Controller) evaluate() {
	amount := c.settledAmount.Value().Get()

	// any newer decision supersedes responses still in flight
	c.seq++
	seq := c.seq

	if !convert.ValidAmount(amount) {
		c.converted = nil
		c.loading = false
		c.emit()
		return
	}

	req := convert.Request{
		Symbol:  c.settledSymbol.Value().Get(),
		Amount:  amount,
		Convert: c.settledTarget.Value().Get(),
	}

	pending := ""
	c.converted = &pending
	c.loading = true
	c.emit()

	ctx := c.runCtx
	go func() {
		res, err := c.converter.ConvertCurrency(ctx, req)
		if c.recorder != nil && ctx.Err() == nil {
			c.recorder.RecordConversion(req, res, err)
		}
		c.loop.Post(func() {
			c.complete(seq, req, res, err)
		})
	}()
}

func (c *Controller) complete(seq uint64, req convert.Request, res convert.Result, err error) {
	if seq != c.seq {
		c.logger.Debug("dropping superseded conversion response",
			"symbol", req.Symbol, "amount", req.Amount, "convert", req.Convert)
		return
	}

	c.loading = false
	if err != nil {
		c.logger.Error("conversion failed",
			"symbol", req.Symbol, "amount", req.Amount, "convert", req.Convert, "error", err)
		c.emit()
		return
	}

	value := res.String()
	c.converted = &value
	c.emit()
}

func (c *Controller) emit() {
	snap := c.store()
	if c.onChange != nil {
		c.onChange(snap)
	}
}

func (c *Controller) store() Snapshot {
	snap := Snapshot{
		Cryptos:   c.cryptos,
		ListState: c.listState,
		Amount:    c.amount.Get(),
		Symbol:    c.symbol.Get(),
		Convert:   c.target.Get(),
		Loading:   c.loading,
	}
	if snap.Cryptos == nil {
		snap.Cryptos = []convert.Currency{}
	}
	if c.converted != nil {
		v := *c.converted
		snap.ConvertedAmount = &v
	}
	c.snapshot.Store(&snap)
	return snap
}
