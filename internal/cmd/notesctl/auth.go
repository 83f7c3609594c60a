package notesctl

import (
	"fmt"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the notes backend",
		Long: `Log in with an email and password. The session is stored locally and
reused by the other commands.

Example:
  notesctl login --email admin@acme.test --password password`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}
			ctx := cmd.Context()
			provider, err := a.openSession(ctx, cmd)
			if err != nil {
				return err
			}
			user, err := provider.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %s", notesapi.Message(err, "check your credentials and try again"))
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Logged in.")
			renderUser(out, user)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			provider, err := a.openSession(ctx, cmd)
			if err != nil {
				return err
			}
			provider.Clear(ctx)
			printSuccess(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			provider, err := a.openSession(ctx, cmd)
			if err != nil {
				return err
			}
			user, err := a.requireUser(ctx, provider)
			if err != nil {
				return err
			}
			renderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}
