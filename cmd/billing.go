package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	billingrender "github.com/felora-io/felora-cli/internal/adapters/render/billing"
	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
)

func newBillingCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Show the billing overview: subscription, usage, payment methods, invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBillingOverview(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	cmd.AddCommand(
		newBillingInfoCmd(app),
	)

	return cmd
}

func runBillingOverview(cmd *cobra.Command, app *app, asJSON bool) error {
	client, session, err := app.billingClient(cmd.Context())
	if err != nil {
		return err
	}

	service := application.NewOverviewService(client, session)

	var overview application.Overview
	fetch := func(ctx context.Context) error {
		overview = service.Load(ctx)
		return nil
	}

	if asJSON {
		if err := fetch(cmd.Context()); err != nil {
			return err
		}

		return writeJSON(cmd, overviewPayload(overview))
	}

	if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading billing overview...", fetch); err != nil {
		return err
	}

	rendered, err := billingrender.Render(overview, billingrender.RenderOptions{
		Now: app.now(),
		Org: session.Org,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// overviewPayload flattens the per-section errors into strings so the JSON
// output stays diffable in scripts.
func overviewPayload(ov application.Overview) any {
	errText := func(err error) string {
		if err == nil {
			return ""
		}
		return err.Error()
	}

	return struct {
		Subscription      *domain.Subscription   `json:"subscription,omitempty"`
		SubscriptionError string                 `json:"subscription_error,omitempty"`
		PaymentMethods    []domain.PaymentMethod `json:"payment_methods"`
		PaymentMethodsErr string                 `json:"payment_methods_error,omitempty"`
		Invoices          []domain.Invoice       `json:"invoices"`
		InvoicesError     string                 `json:"invoices_error,omitempty"`
		Usage             *domain.UsageMetrics   `json:"usage,omitempty"`
		UsageError        string                 `json:"usage_error,omitempty"`
	}{
		Subscription:      ov.Subscription,
		SubscriptionError: errText(ov.SubscriptionErr),
		PaymentMethods:    ov.PaymentMethods,
		PaymentMethodsErr: errText(ov.PaymentMethodsErr),
		Invoices:          ov.Invoices,
		InvoicesError:     errText(ov.InvoicesErr),
		Usage:             ov.Usage,
		UsageError:        errText(ov.UsageErr),
	}
}

func newBillingInfoCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Manage billing contact information",
	}

	cmd.AddCommand(
		newBillingInfoShowCmd(app),
		newBillingInfoUpdateCmd(app),
	)

	return cmd
}

func newBillingInfoShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the org's billing contact information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := app.billingClient(cmd.Context())
			if err != nil {
				return err
			}

			info, err := client.GetBillingInfo(cmd.Context(), session.Org)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, info)
			}

			printBillingInfo(cmd, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func printBillingInfo(cmd *cobra.Command, info domain.BillingInfo) {
	out := cmd.OutOrStdout()
	rows := []struct {
		label string
		value string
	}{
		{"name", info.Name},
		{"email", info.BillingEmail},
		{"address", info.AddressLine1},
		{"", info.AddressLine2},
		{"city", info.City},
		{"state", info.State},
		{"postal code", info.PostalCode},
		{"country", info.Country},
		{"tax id", info.TaxID},
	}

	for _, row := range rows {
		if row.value == "" {
			continue
		}
		_, _ = fmt.Fprintf(out, "%-12s %s\n", row.label, row.value)
	}
}

func newBillingInfoUpdateCmd(app *app) *cobra.Command {
	var info domain.BillingInfo

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the org's billing contact information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := app.billingClient(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := client.UpdateBillingInfo(cmd.Context(), session.Org, info)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Billing information updated.")
			printBillingInfo(cmd, updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&info.Name, "name", "", "Billing name")
	cmd.Flags().StringVar(&info.BillingEmail, "email", "", "Billing email")
	cmd.Flags().StringVar(&info.AddressLine1, "line1", "", "Address line 1")
	cmd.Flags().StringVar(&info.AddressLine2, "line2", "", "Address line 2")
	cmd.Flags().StringVar(&info.City, "city", "", "City")
	cmd.Flags().StringVar(&info.State, "state", "", "State or province")
	cmd.Flags().StringVar(&info.PostalCode, "postal-code", "", "Postal code")
	cmd.Flags().StringVar(&info.Country, "country", "", "Country code")
	cmd.Flags().StringVar(&info.TaxID, "tax-id", "", "Tax ID")

	return cmd
}
