package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
)

func newPaymentCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage payment methods",
	}

	cmd.AddCommand(
		newPaymentListCmd(app),
		newPaymentAddCmd(app),
		newPaymentRemoveCmd(app),
		newPaymentDefaultCmd(app),
	)

	return cmd
}

func (a *app) paymentService(cmd *cobra.Command, assumeYes bool) (*application.PaymentMethodService, error) {
	client, session, err := a.billingClient(cmd.Context())
	if err != nil {
		return nil, err
	}

	confirmer := newConfirmer(cmd, assumeYes)
	return application.NewPaymentMethodService(client, a.notifier, confirmer, session), nil
}

func newPaymentListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payment methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.paymentService(cmd, false)
			if err != nil {
				return err
			}

			methods, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, methods)
			}

			printPaymentMethods(cmd, methods)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func printPaymentMethods(cmd *cobra.Command, methods []domain.PaymentMethod) {
	out := cmd.OutOrStdout()
	if len(methods) == 0 {
		_, _ = fmt.Fprintln(out, "No payment methods. Add one with \"flr payment add\".")
		return
	}

	for _, method := range methods {
		line := fmt.Sprintf("%s\t%s", method.ID, method.Label())
		if method.Card != nil {
			line += "\texp " + method.Card.Expiry()
		}
		if method.IsDefault {
			line += "\t(default)"
		}
		_, _ = fmt.Fprintln(out, line)
	}
}

func newPaymentAddCmd(app *app) *cobra.Command {
	var contact domain.BillingContact
	var cardNumber string
	var expMonth int64
	var expYear int64
	var cvc string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a payment method (card details go to the tokenization provider, never to Felora)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := app.billingClient(cmd.Context())
			if err != nil {
				return err
			}

			workflow := application.NewEnrollmentWorkflow(client, app.cardTokenizer(session), app.notifier, session, nil)
			workflow.Begin()

			if err := workflow.SetContact(contact); err != nil {
				return err
			}
			if err := workflow.SetCard(domain.CardDetails{
				Number:   cardNumber,
				ExpMonth: expMonth,
				ExpYear:  expYear,
				CVC:      cvc,
			}); err != nil {
				return err
			}

			err = workflow.Submit(cmd.Context())
			flushNotifications(cmd.ErrOrStderr(), app.notifier)
			if err != nil {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&contact.Name, "name", "", "Cardholder name")
	cmd.Flags().StringVar(&contact.Email, "email", "", "Billing email")
	cmd.Flags().StringVar(&contact.Line1, "line1", "", "Address line 1")
	cmd.Flags().StringVar(&contact.Line2, "line2", "", "Address line 2 (optional)")
	cmd.Flags().StringVar(&contact.City, "city", "", "City")
	cmd.Flags().StringVar(&contact.State, "state", "", "State or province")
	cmd.Flags().StringVar(&contact.PostalCode, "postal-code", "", "Postal code")
	cmd.Flags().StringVar(&contact.Country, "country", "", "Country code")
	cmd.Flags().StringVar(&cardNumber, "card-number", "", "Card number")
	cmd.Flags().Int64Var(&expMonth, "exp-month", 0, "Card expiry month")
	cmd.Flags().Int64Var(&expYear, "exp-year", 0, "Card expiry year")
	cmd.Flags().StringVar(&cvc, "cvc", "", "Card verification code")

	return cmd
}

func newPaymentRemoveCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "remove <payment-method-id>",
		Short: "Remove a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := app.paymentService(cmd, assumeYes)
			if err != nil {
				return err
			}

			if err := service.Remove(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, application.ErrAborted) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
				return err
			}

			flushNotifications(cmd.ErrOrStderr(), app.notifier)
			return nil
		},
	}

	cmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newPaymentDefaultCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default <payment-method-id>",
		Short: "Make a payment method the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := app.paymentService(cmd, false)
			if err != nil {
				return err
			}

			methods, err := service.SetDefault(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			flushNotifications(cmd.ErrOrStderr(), app.notifier)
			printPaymentMethods(cmd, methods)
			return nil
		},
	}

	return cmd
}
