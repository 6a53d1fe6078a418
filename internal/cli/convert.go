package cli

import (
	"fmt"
	"strings"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/spf13/cobra"
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert SYMBOL AMOUNT [CONVERT]",
		Short: "Convert an amount once",
		Long: `Convert an amount of a cryptocurrency into a target currency
(default USD) and print the result. The conversion is journaled.`,
		Example: "  curconv convert BTC 0.5 EUR",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := fromContext(cmd.Context())

			req := convert.Request{
				Symbol:  strings.ToUpper(args[0]),
				Amount:  args[1],
				Convert: convert.DefaultConvert,
			}
			if len(args) == 3 {
				req.Convert = strings.ToUpper(args[2])
			}
			if err := req.Validate(); err != nil {
				return usageError(err)
			}

			db, repository, err := openStore(a)
			if err != nil {
				return err
			}
			defer db.Close()

			journal, err := newJournal(a, repository, models.SourceCLI)
			if err != nil {
				return err
			}

			res, err := a.cfg.Client().ConvertCurrency(cmd.Context(), req)
			journal.RecordConversion(req, res, err)
			if err != nil {
				a.logger.Error("conversion failed",
					"symbol", req.Symbol, "amount", req.Amount, "convert", req.Convert, "error", err)
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", req.Amount, req.Symbol, res.String(), req.Convert)
			return err
		},
	}

	return cmd
}
