package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/converter"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"

	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the converter interactively",
		Long: `Watch runs the converter widget in the terminal. Each input line edits
one field:

  amount 1.5     set the amount (a bare number does the same)
  symbol ETH     set the cryptocurrency
  convert EUR    set the target currency
  quit           stop

Edits are debounced like keystrokes in the web widget. The converted
amount is printed every time it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, fromContext(cmd.Context()))
		},
	}

	cmd.Flags().Duration("debounce", 0, "debounce delay for edits (env DEBOUNCE_DELAY)")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, a *app) error {
	db, repository, err := openStore(a)
	if err != nil {
		return err
	}
	defer db.Close()

	journal, err := newJournal(a, repository, models.SourceCLI)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	last := ""
	widget, err := converter.NewController(
		converter.WithContext(ctx),
		converter.WithLogger(a.logger),
		converter.WithClient(a.cfg.Client()),
		converter.WithRecorder(journal),
		converter.WithDelay(a.cfg.DebounceDelay),
		converter.WithOnChange(func(s converter.Snapshot) {
			display := s.Display()
			if display == "" || display == "…" || display == last {
				return
			}
			if last == "" && s.ConvertedAmount == nil {
				return
			}
			last = display
			fmt.Fprintln(out, display)
		}),
	)
	if err != nil {
		return err
	}
	if err := widget.Start(); err != nil {
		return err
	}
	defer widget.Stop()

	if err := readEdits(cmd.InOrStdin(), cmd.ErrOrStderr(), widget); err != nil {
		return err
	}

	settleCtx, cancel := context.WithTimeout(ctx, a.cfg.DebounceDelay+a.cfg.HTTPTimeout+time.Second)
	defer cancel()
	return widget.Settle(settleCtx)
}

type fieldSetter interface {
	SetAmount(string)
	SetSymbol(string)
	SetConvert(string)
}

// readEdits applies input lines to the widget until EOF or quit.
func readEdits(in io.Reader, errOut io.Writer, widget fieldSetter) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		field, value, hasValue := strings.Cut(line, " ")
		value = strings.TrimSpace(value)
		switch strings.ToLower(field) {
		case "quit", "exit":
			return nil
		case "amount":
			widget.SetAmount(value)
		case "symbol":
			widget.SetSymbol(strings.ToUpper(value))
		case "convert":
			widget.SetConvert(strings.ToUpper(value))
		default:
			if hasValue {
				fmt.Fprintf(errOut, "unknown field %q\n", field)
				continue
			}
			widget.SetAmount(line)
		}
	}
	return scanner.Err()
}
