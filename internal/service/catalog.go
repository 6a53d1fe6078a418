package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tickerScheduler "github.com/mahesh00009/CurToCryptoFrontend/pkg/integrations/scheduler"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/cache"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/scheduler"

	"github.com/pkg/errors"
)

var ErrInvalidCatalogConfig = errors.New("invalid catalog service config")

const topCryptosKey = "topCryptos"

var _ convert.CurrencyLister = (*CatalogService)(nil)

// CatalogService keeps the remote top crypto list warm for every widget.
type CatalogService struct {
	ctx       context.Context
	logger    *slog.Logger
	lister    convert.CurrencyLister
	cache     cache.Cache[string, []convert.Currency]
	interval  time.Duration
	scheduler scheduler.Scheduler

	// serializes fetch-through loads so a cold start hits the service once
	loadMu sync.Mutex
}

type CatalogOption func(*CatalogService)

func WithCatalogContext(ctx context.Context) CatalogOption {
	return func(s *CatalogService) {
		s.ctx = ctx
	}
}

func WithCatalogLogger(l *slog.Logger) CatalogOption {
	return func(s *CatalogService) {
		s.logger = l
	}
}

func WithCatalogLister(l convert.CurrencyLister) CatalogOption {
	return func(s *CatalogService) {
		s.lister = l
	}
}

func WithCatalogCache(c cache.Cache[string, []convert.Currency]) CatalogOption {
	return func(s *CatalogService) {
		s.cache = c
	}
}

func WithCatalogRefreshInterval(d time.Duration) CatalogOption {
	return func(s *CatalogService) {
		s.interval = d
	}
}

func (s *CatalogService) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidCatalogConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidCatalogConfig, "logger cannot be nil")
	case s.lister == nil:
		return errors.Wrap(ErrInvalidCatalogConfig, "lister cannot be nil")
	case s.cache == nil:
		return errors.Wrap(ErrInvalidCatalogConfig, "cache cannot be nil")
	case s.interval <= 0:
		return errors.Wrap(ErrInvalidCatalogConfig, "refresh interval must be positive")
	default:
		return nil
	}
}

func NewCatalogService(opts ...CatalogOption) (*CatalogService, error) {
	s := &CatalogService{
		interval: scheduler.IntervalHourly,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.IsValid(); err != nil {
		return nil, err
	}

	sched, err := tickerScheduler.New(
		tickerScheduler.WithName("catalog"),
		tickerScheduler.WithContext(s.ctx),
		tickerScheduler.WithLogger(s.logger),
		tickerScheduler.WithInterval(s.interval),
		tickerScheduler.WithImmediate(),
		tickerScheduler.WithHandler(s.Refresh),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}
	s.scheduler = sched

	return s, nil
}

func (s *CatalogService) Start() error {
	return s.scheduler.Start()
}

func (s *CatalogService) Stop() {
	s.scheduler.Stop()
}

// Refresh replaces the cached list. On failure the previous list stays.
func (s *CatalogService) Refresh() error {
	list, err := s.lister.TopCryptos(s.ctx)
	if err != nil {
		return errors.Wrap(err, "failed to refresh top cryptos")
	}
	s.cache.Set(topCryptosKey, list)
	s.logger.Info("refreshed top cryptos", "count", len(list))
	return nil
}

// TopCryptos serves the cached list, loading it on first use.
func (s *CatalogService) TopCryptos(ctx context.Context) ([]convert.Currency, error) {
	if list, ok := s.cache.Get(topCryptosKey); ok {
		return list, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if list, ok := s.cache.Get(topCryptosKey); ok {
		return list, nil
	}

	list, err := s.lister.TopCryptos(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top cryptos")
	}
	s.cache.Set(topCryptosKey, list)
	return list, nil
}

// Age reports how old the cached list is.
func (s *CatalogService) Age() (time.Duration, bool) {
	return s.cache.Age(topCryptosKey)
}
