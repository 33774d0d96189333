package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the active account context",
	}

	cmd.AddCommand(
		newAccountShowCmd(app),
	)

	return cmd
}

func newAccountShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved session: org, email, API base, demo flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				payload := struct {
					Org      string `json:"org"`
					Email    string `json:"email,omitempty"`
					APIBase  string `json:"api_base,omitempty"`
					Demo     bool   `json:"demo"`
					LoggedIn bool   `json:"logged_in"`
				}{
					Org:      string(session.Org),
					Email:    session.Email,
					APIBase:  session.APIBase,
					Demo:     session.Demo,
					LoggedIn: session.LoggedIn() || session.Demo,
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if session.Org == "" {
				_, _ = fmt.Fprintln(out, "No session saved. Run \"flr login\" to get started.")
				return nil
			}

			_, _ = fmt.Fprintf(out, "org:      %s\n", session.Org)
			if session.Email != "" {
				_, _ = fmt.Fprintf(out, "email:    %s\n", session.Email)
			}
			apiBase := session.APIBase
			if apiBase == "" {
				apiBase = defaultAPIBase
			}
			_, _ = fmt.Fprintf(out, "api base: %s\n", apiBase)
			if session.Demo {
				_, _ = fmt.Fprintln(out, "mode:     demo (canned data)")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeJSON(cmd *cobra.Command, payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return err
}
