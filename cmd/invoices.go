package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felora-io/felora-cli/internal/domain"
)

func newInvoicesCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := app.billingClient(cmd.Context())
			if err != nil {
				return err
			}

			invoices, err := client.ListInvoices(cmd.Context(), session.Org)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, invoices)
			}

			out := cmd.OutOrStdout()
			if len(invoices) == 0 {
				_, _ = fmt.Fprintln(out, "No invoices.")
				return nil
			}

			for _, invoice := range invoices {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
					invoice.Number,
					invoice.Created.Format("2006-01-02"),
					domain.FormatAmount(invoice.DisplayAmount(), invoice.Currency),
					invoice.Status.Label(),
				)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
