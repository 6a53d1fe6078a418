package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mahesh00009/CurToCryptoFrontend/docs"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/handler"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/service"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/integrations/memcache"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the converter web server",
		Long: `Serve the converter widget at / together with the JSON API under /api
and the API documentation under /swagger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, fromContext(cmd.Context()))
		},
	}

	f := cmd.Flags()
	f.String("port", "", "listen port (env APP_PORT)")
	f.String("db-path", "", "conversion journal database, :memory: keeps it in memory (env DB_PATH)")
	f.Duration("debounce", 0, "debounce delay for widget edits (env DEBOUNCE_DELAY)")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	db, repository, err := openStore(a)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog, err := service.NewCatalogService(
		service.WithCatalogContext(ctx),
		service.WithCatalogLogger(a.logger),
		service.WithCatalogLister(a.cfg.Client()),
		service.WithCatalogCache(memcache.New[string, []convert.Currency]()),
		service.WithCatalogRefreshInterval(a.cfg.CatalogRefresh),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create catalog service")
	}
	if err := catalog.Start(); err != nil {
		return errors.Wrap(err, "failed to start catalog service")
	}
	defer catalog.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h, err := handler.New(
		handler.WithContext(ctx),
		handler.WithLogger(a.logger),
		handler.WithEngine(r),
		handler.WithRepository(repository),
		handler.WithLister(catalog),
		handler.WithConverter(a.cfg.Client()),
		handler.WithDebounceDelay(a.cfg.DebounceDelay),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create handler")
	}
	if err := h.Setup(); err != nil {
		return errors.Wrap(err, "failed to setup routes")
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting curconv", "port", a.cfg.Port, "baseURL", a.cfg.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "failed to start server")
	case <-ctx.Done():
	}

	a.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
