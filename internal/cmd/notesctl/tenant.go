package notesctl

import (
	"fmt"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/spf13/cobra"
)

func newInviteCommand(a *app) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Invite a user to your tenant (admins only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("email is required")
			}
			ctx := cmd.Context()
			provider, err := a.openSession(ctx, cmd)
			if err != nil {
				return err
			}
			user, err := a.requireUser(ctx, provider)
			if err != nil {
				return err
			}
			if !user.IsAdmin() {
				return fmt.Errorf("only tenant admins can invite users")
			}
			parsed := notesapi.ParseRole(role)
			if err := provider.API().Invite(ctx, email, parsed); err != nil {
				return failure(ctx, provider, "invite", err)
			}
			printSuccess(cmd.OutOrStdout(), "Invited %s as %s.", email, parsed)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email of the user to invite")
	cmd.Flags().StringVar(&role, "role", string(notesapi.RoleMember), "Role to grant: member or admin")
	return cmd
}

func newUpgradeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade your tenant to the Pro plan (admins only)",
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
			out := cmd.OutOrStdout()
			if !user.IsAdmin() {
				return fmt.Errorf("only tenant admins can upgrade; ask an admin to upgrade to Pro")
			}
			if user.Tenant.Plan == notesapi.PlanPro {
				printSuccess(out, "%s is already on the Pro plan.", tenantName(user.Tenant))
				return nil
			}
			slug := strings.TrimSpace(user.Tenant.Slug)
			if slug == "" {
				return fmt.Errorf("tenant slug is unknown; cannot upgrade")
			}
			if err := provider.API().UpgradeTenant(ctx, slug); err != nil {
				return failure(ctx, provider, "upgrade", err)
			}
			provider.Refresh(ctx)
			if state := provider.State(); state.Authenticated() {
				user = *state.User
			}
			printSuccess(out, "Upgraded to Pro.")
			renderUser(out, user)
			return nil
		},
	}
}
