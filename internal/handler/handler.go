package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/controller"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/converter"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/repo"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/service"
	uiHandler "github.com/mahesh00009/CurToCryptoFrontend/internal/ui/handler"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/debounce"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/integrations/memcache"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/gin-gonic/gin"
)

var (
	ErrNilEngine     = errors.New("engine is required")
	ErrNilRepository = errors.New("repository is required")
	ErrNilLister     = errors.New("currency lister is required")
	ErrNilConverter  = errors.New("converter is required")
)

// catalogAger is implemented by listers that cache the crypto list.
type catalogAger interface {
	Age() (time.Duration, bool)
}

type Handler struct {
	ctx        context.Context
	logger     *slog.Logger
	engine     *gin.Engine
	repository *repo.Repository
	lister     convert.CurrencyLister
	converter  convert.Converter
	delay      time.Duration
}

func (h *Handler) IsValid() error {
	if h.engine == nil {
		return ErrNilEngine
	}
	if h.repository == nil {
		return ErrNilRepository
	}
	if h.lister == nil {
		return ErrNilLister
	}
	if h.converter == nil {
		return ErrNilConverter
	}
	return nil
}

type Option func(*Handler)

func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithRepository(repository *repo.Repository) Option {
	return func(h *Handler) {
		h.repository = repository
	}
}

func WithLister(l convert.CurrencyLister) Option {
	return func(h *Handler) {
		h.lister = l
	}
}

func WithConverter(cv convert.Converter) Option {
	return func(h *Handler) {
		h.converter = cv
	}
}

func WithDebounceDelay(d time.Duration) Option {
	return func(h *Handler) {
		h.delay = d
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{
		ctx:    context.Background(),
		logger: slog.Default(),
		delay:  debounce.DefaultDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Setup() error {
	journal, err := service.NewJournal(
		service.WithJournalLogger(h.logger),
		service.WithJournalRepo(h.repository),
		service.WithJournalSource(models.SourceAPI),
	)
	if err != nil {
		return err
	}

	ctrlOpts := []controller.Option{
		controller.WithContext(h.ctx),
		controller.WithLogger(h.logger),
		controller.WithRepository(h.repository),
		controller.WithLister(h.lister),
		controller.WithConverter(h.converter),
		controller.WithJournals(journal, journal.WithSource(models.SourceWidget)),
		controller.WithDebounceDelay(h.delay),
		controller.WithSessions(memcache.New[string, *converter.Controller]()),
	}
	if ager, ok := h.lister.(catalogAger); ok {
		ctrlOpts = append(ctrlOpts, controller.WithCatalogAge(ager.Age))
	}
	ctrl, err := controller.New(ctrlOpts...)
	if err != nil {
		return err
	}

	web, err := uiHandler.New(
		uiHandler.WithEngine(h.engine),
		uiHandler.WithSessionPath("/api/converter/ws"),
	)
	if err != nil {
		return err
	}
	if err := web.Setup(); err != nil {
		return err
	}

	api := h.engine.Group("/api")
	api.GET("/health", ctrl.Health)
	api.GET("/cryptos", ctrl.ListCryptos)
	api.GET("/currencies", ctrl.ListCurrencies)
	api.POST("/convert", ctrl.Convert)

	conversions := api.Group("/conversions")
	conversions.GET("", ctrl.ListConversions)
	conversions.GET("/stats", ctrl.ConversionStats)
	conversions.GET("/:id", ctrl.GetConversion)

	api.GET("/converter/ws", ctrl.ConverterSession)

	return nil
}
