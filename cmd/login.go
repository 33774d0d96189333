package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felora-io/felora-cli/internal/domain"
)

func portalTokenRef(org domain.OrgID) string {
	return fmt.Sprintf("felora://%s/portal-token", org)
}

func newLoginCmd(app *app) *cobra.Command {
	var orgID string
	var email string
	var token string
	var apiBase string
	var demo bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save portal credentials for an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if demo {
				session := domain.Session{
					Org:   domain.OrgID(orgID),
					Email: email,
					Demo:  true,
				}
				if session.Org == "" {
					session.Org = "org_demo"
				}
				if err := app.sessions.Save(ctx, session); err != nil {
					return fmt.Errorf("save session: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s (demo mode, canned data only)\n", session.Org)
				return nil
			}

			if orgID == "" {
				return errors.New("--org is required (or pass --demo)")
			}
			if token == "" {
				return errors.New("--token is required (or pass --demo)")
			}

			session := domain.Session{
				Org:      domain.OrgID(orgID),
				Email:    email,
				APIBase:  apiBase,
				TokenRef: portalTokenRef(domain.OrgID(orgID)),
			}

			if err := app.secrets.Put(ctx, session.TokenRef, token); err != nil {
				return fmt.Errorf("store portal token: %w", err)
			}

			if err := app.sessions.Save(ctx, session); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", session.Org)
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization ID")
	cmd.Flags().StringVar(&email, "email", "", "Account email (informational)")
	cmd.Flags().StringVar(&token, "token", "", "Portal API token")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "Override the API base URL")
	cmd.Flags().BoolVar(&demo, "demo", false, "Use the built-in demo dataset instead of a real backend")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session and portal token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, err := app.sessions.Load(ctx)
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}

			if session.TokenRef != "" {
				// Best effort: a missing secret should not block logout.
				_ = app.secrets.Delete(ctx, session.TokenRef)
			}

			if err := app.sessions.Clear(ctx); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
