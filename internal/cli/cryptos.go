package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCryptosCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "cryptos",
		Short: "List the top cryptocurrencies",
		Long:  "Fetch the top cryptocurrency list from the conversion service.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd.Context())
			list, err := a.cfg.Client().TopCryptos(cmd.Context())
			if err != nil {
				a.logger.Error("failed to load currency list", "error", err)
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tID")
			for _, c := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Symbol, c.Name, c.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the list as JSON")

	return cmd
}
