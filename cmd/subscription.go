package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
)

func newSubscriptionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "View and cancel the subscription",
	}

	cmd.AddCommand(
		newSubscriptionShowCmd(app),
		newSubscriptionCancelCmd(app),
	)

	return cmd
}

func (a *app) subscriptionService(cmd *cobra.Command, assumeYes bool) (*application.SubscriptionService, error) {
	client, session, err := a.billingClient(cmd.Context())
	if err != nil {
		return nil, err
	}

	confirmer := newConfirmer(cmd, assumeYes)
	return application.NewSubscriptionService(client, a.notifier, confirmer, session), nil
}

func newSubscriptionShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.subscriptionService(cmd, false)
			if err != nil {
				return err
			}

			sub, err := service.Get(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrNoSubscription) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No active subscription. Pick a plan with \"flr plan select\".")
					return nil
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd, sub)
			}

			printSubscription(cmd, sub, app.now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func printSubscription(cmd *cobra.Command, sub domain.Subscription, now time.Time) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "plan:    %s (%s)\n", sub.Plan.Name, sub.Plan.FormatPrice())
	_, _ = fmt.Fprintf(out, "status:  %s\n", sub.Status.Label())

	if next, ok := sub.NextBilling(); ok {
		_, _ = fmt.Fprintf(out, "renews:  %s\n", next.Format("Jan 2, 2006"))
	} else {
		_, _ = fmt.Fprintf(out, "ends:    %s\n", sub.CurrentPeriodEnd.Format("Jan 2, 2006"))
	}

	if sub.CancelAtPeriodEnd && sub.CurrentPeriodEnd.After(now) {
		_, _ = fmt.Fprintln(out, "note:    cancels at the end of the current period")
	}
}

func newSubscriptionCancelCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the subscription at the end of the current period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.subscriptionService(cmd, assumeYes)
			if err != nil {
				return err
			}

			sub, err := service.Cancel(cmd.Context())
			flushNotifications(cmd.ErrOrStderr(), app.notifier)
			if err != nil {
				if errors.Is(err, application.ErrAborted) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
				return err
			}

			printSubscription(cmd, sub, app.now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
