package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	billingrender "github.com/felora-io/felora-cli/internal/adapters/render/billing"
)

func newUsageCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show usage against the current plan's limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := app.billingClient(cmd.Context())
			if err != nil {
				return err
			}

			usage, err := client.GetUsage(cmd.Context(), session.Org)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, usage)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), billingrender.UsageView(usage))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
