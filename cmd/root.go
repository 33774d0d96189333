package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flr",
		Short:         "Felora Portal CLI (flr): manage API keys, billing, and subscriptions",
		Long:          "flr (Felora Portal CLI) manages your artifact-delivery account from the terminal: issue and revoke API keys, enroll payment methods, switch subscription plans, and watch usage against your plan limits.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newAccountCmd(app),
		newKeysCmd(app),
		newBillingCmd(app),
		newPaymentCmd(app),
		newPlanCmd(app),
		newSubscriptionCmd(app),
		newInvoicesCmd(app),
		newUsageCmd(app),
	)

	return rootCmd
}
