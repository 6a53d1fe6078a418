// Package cli implements the cobra command tree for curconv.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/config"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/utils"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

type appKey struct{}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func fromContext(ctx context.Context) *app {
	if a, ok := ctx.Value(appKey{}).(*app); ok {
		return a
	}
	return nil
}

// NewRootCommand constructs the top-level command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "curconv",
		Short: "Convert cryptocurrency amounts into fiat",
		Long: `curconv converts cryptocurrency amounts into fiat and other
currencies using a remote conversion service.

It serves a live converter widget over HTTP, answers one-shot conversions
from the terminal, and runs an interactive terminal widget that converts as
you type.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := utils.LoadEnv(envFile); err != nil {
				return usageError(err)
			}

			cfg, err := config.Load()
			if err != nil {
				return usageError(err)
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return usageError(err)
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			logger = logger.With("cmd", cmd.Name())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, &app{cfg: cfg, logger: logger}))

			logger.Debug("configuration loaded", "baseURL", cfg.BaseURL, "logLevel", cfg.LogLevel)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", utils.DefaultEnvFile, "dotenv file to load before reading the environment")
	pf.String("base-url", "", "conversion service base URL (env BASE_URL)")
	pf.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(
		newServeCommand(),
		newCryptosCommand(),
		newConvertCommand(),
		newWatchCommand(),
	)

	return cmd
}

// applyFlags lets explicitly set flags override environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("debounce") {
		cfg.DebounceDelay, _ = flags.GetDuration("debounce")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}
	if flags.Changed("db-path") {
		cfg.DBPath, _ = flags.GetString("db-path")
	}
	return cfg.Validate()
}
