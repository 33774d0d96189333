package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
)

func newKeysCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
	}

	cmd.AddCommand(
		newKeysCreateCmd(app),
		newKeysListCmd(app),
		newKeysVerifyCmd(app),
		newKeysRevokeCmd(app),
	)

	return cmd
}

func (a *app) keyService(cmd *cobra.Command, assumeYes bool) (*application.KeyService, error) {
	client, session, err := a.billingClient(cmd.Context())
	if err != nil {
		return nil, err
	}

	confirmer := newConfirmer(cmd, assumeYes)
	return application.NewKeyService(client, a.secrets, a.notifier, confirmer, session), nil
}

func newKeysCreateCmd(app *app) *cobra.Command {
	var name string
	var scopes []string
	var expiresIn time.Duration
	var saveSecret bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.keyService(cmd, false)
			if err != nil {
				return err
			}

			var expiresAt *time.Time
			if expiresIn > 0 {
				t := app.now().Add(expiresIn)
				expiresAt = &t
			}

			key, err := service.Create(cmd.Context(), name, scopes, expiresAt, saveSecret)
			if err != nil {
				return err
			}

			defer flushNotifications(cmd.ErrOrStderr(), app.notifier)

			if asJSON {
				return writeJSON(cmd, key)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Created key %s (%s)\n", key.KeyID, key.Name)
			if key.Secret != "" {
				_, _ = fmt.Fprintf(out, "Secret: %s\n", key.Secret)
				_, _ = fmt.Fprintln(out, "Store it now; the secret is not retrievable later.")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Key name")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "Key scope (repeatable; default artifacts:read)")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Expiry relative to now, e.g. 720h (default: no expiry)")
	cmd.Flags().BoolVar(&saveSecret, "save-secret", false, "Save the key secret in the local secret store")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newKeysListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.keyService(cmd, false)
			if err != nil {
				return err
			}

			keys, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, keys)
			}

			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				_, _ = fmt.Fprintln(out, "No API keys.")
				return nil
			}

			for _, key := range keys {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", key.KeyID, key.Name, key.State.Label(), keyExpiryLabel(key))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func keyExpiryLabel(key domain.APIKey) string {
	if key.ExpiresAt == nil {
		return "no expiry"
	}

	return "expires " + key.ExpiresAt.Format("2006-01-02")
}

func newKeysVerifyCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "verify <api-key>",
		Short: "Check whether an API key is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := app.keyService(cmd, false)
			if err != nil {
				return err
			}

			verification, err := service.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, verification)
			}

			out := cmd.OutOrStdout()
			if !verification.OK {
				_, _ = fmt.Fprintln(out, "Key is invalid or revoked.")
				return nil
			}

			_, _ = fmt.Fprintf(out, "Key is valid for org %s (scopes: %v)\n", verification.OrgID, verification.Scopes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newKeysRevokeCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "revoke <key-id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := app.keyService(cmd, assumeYes)
			if err != nil {
				return err
			}

			if err := service.Revoke(cmd.Context(), args[0]); err != nil {
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
