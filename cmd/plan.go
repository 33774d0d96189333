package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	billingrender "github.com/felora-io/felora-cli/internal/adapters/render/billing"
	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
)

func newPlanCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View plans and switch between them",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanSelectCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the plan catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return writeJSON(cmd, domain.Catalog())
			}

			currentPlanID, err := currentPlan(cmd, app)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), billingrender.PlansView(currentPlanID))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

// currentPlan resolves the org's current plan ID. No subscription (and no
// saved session in the catalog-browsing case) both mean "no current plan".
func currentPlan(cmd *cobra.Command, app *app) (string, error) {
	client, session, err := app.billingClient(cmd.Context())
	if err != nil {
		return "", nil
	}

	sub, err := client.GetSubscription(cmd.Context(), session.Org)
	if err != nil {
		return "", nil
	}

	return sub.Plan.ID, nil
}

func newPlanSelectCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "select <plan-id>",
		Short: "Switch the subscription to another plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, session, err := app.billingClient(cmd.Context())
			if err != nil {
				return err
			}

			currentPlanID := ""
			if sub, err := client.GetSubscription(cmd.Context(), session.Org); err == nil {
				currentPlanID = sub.Plan.ID
			}

			workflow := application.NewPlanSelectionWorkflow(client, app.notifier, session, currentPlanID, nil)
			if err := workflow.Select(args[0]); err != nil {
				return err
			}

			if !workflow.CanSubmit() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Already on plan %s; nothing to do.\n", args[0])
				return nil
			}

			if summary, ok := workflow.ChangeSummary(); ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), summary)
			}

			confirmed, err := newConfirmer(cmd, assumeYes).Confirm("Proceed?")
			if err != nil {
				return err
			}
			if !confirmed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			sub, err := workflow.Submit(cmd.Context())
			flushNotifications(cmd.ErrOrStderr(), app.notifier)
			if err != nil {
				return err
			}

			printSubscription(cmd, sub, app.now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
