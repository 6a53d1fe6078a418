package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/converter"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/currencies"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/debounce"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/cache"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"
	typesRepo "github.com/mahesh00009/CurToCryptoFrontend/pkg/types/repo"

	"github.com/pkg/errors"
)

// Journal records conversions under a source tag.
type Journal interface {
	converter.Recorder
}

type Controller struct {
	ctx        context.Context
	logger     *slog.Logger
	repo       typesRepo.Repository
	lister     convert.CurrencyLister
	converter  convert.Converter
	apiJournal Journal
	wsJournal  Journal
	catalog    currencies.Catalog
	delay      time.Duration
	sessions   cache.Cache[string, *converter.Controller]
	catalogAge func() (time.Duration, bool)
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

func WithRepository(r typesRepo.Repository) Option {
	return func(c *Controller) {
		c.repo = r
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

// WithJournals sets the recorders for one-shot API conversions and for
// widget sessions.
func WithJournals(api, widget Journal) Option {
	return func(c *Controller) {
		c.apiJournal = api
		c.wsJournal = widget
	}
}

func WithCatalog(cat currencies.Catalog) Option {
	return func(c *Controller) {
		c.catalog = cat
	}
}

func WithDebounceDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

func WithSessions(s cache.Cache[string, *converter.Controller]) Option {
	return func(c *Controller) {
		c.sessions = s
	}
}

// WithCatalogAge reports the age of the cached crypto list on /api/health.
func WithCatalogAge(fn func() (time.Duration, bool)) Option {
	return func(c *Controller) {
		c.catalogAge = fn
	}
}

func (c *Controller) IsValid() error {
	switch {
	case c.ctx == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "ctx cannot be nil")
	case c.logger == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "logger cannot be nil")
	case c.repo == nil:
		return ErrNilRepository
	case c.lister == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "lister cannot be nil")
	case c.converter == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "converter cannot be nil")
	case c.sessions == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "session cache cannot be nil")
	case c.delay < 0:
		return errors.Wrap(ErrInvalidControllerConfig, "debounce delay cannot be negative")
	default:
		return nil
	}
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		delay:   debounce.DefaultDelay,
		catalog: currencies.Builtin(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.IsValid(); err != nil {
		return nil, err
	}
	return c, nil
}
