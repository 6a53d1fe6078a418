package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/integrations/curcrypto"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the runtime settings read from the environment.
type Config struct {
	BaseURL        string        `envconfig:"BASE_URL" default:"https://curcrypto.onrender.com"`
	Port           string        `envconfig:"APP_PORT" default:"8080"`
	DBPath         string        `envconfig:"DB_PATH" default:":memory:"`
	DebounceDelay  time.Duration `envconfig:"DEBOUNCE_DELAY" default:"100ms"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	CatalogRefresh time.Duration `envconfig:"CATALOG_REFRESH" default:"1h"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return errors.Wrap(ErrInvalidConfig, "base url cannot be empty")
	case c.Port == "":
		return errors.Wrap(ErrInvalidConfig, "port cannot be empty")
	case c.DebounceDelay < 0:
		return errors.Wrap(ErrInvalidConfig, "debounce delay cannot be negative")
	case c.HTTPTimeout <= 0:
		return errors.Wrap(ErrInvalidConfig, "http timeout must be positive")
	case c.CatalogRefresh <= 0:
		return errors.Wrap(ErrInvalidConfig, "catalog refresh must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Client builds the remote service client for this config.
func (c *Config) Client() *curcrypto.Client {
	return curcrypto.New(c.BaseURL, curcrypto.WithTimeout(c.HTTPTimeout))
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, errors.Wrapf(ErrInvalidConfig, "unknown log level %q", s)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
