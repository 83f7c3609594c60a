package notesctl

import (
	"fmt"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/spf13/cobra"
)

func newNotesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List, create and delete tenant notes",
	}
	cmd.AddCommand(newNotesListCommand(a), newNotesCreateCommand(a), newNotesDeleteCommand(a))
	return cmd
}

func newNotesListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the notes of your tenant",
		Args:    cobra.NoArgs,
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
			notes, err := provider.API().ListNotes(ctx)
			if err != nil {
				return failure(ctx, provider, "list notes", err)
			}
			renderNotes(cmd.OutOrStdout(), user, notes)
			return nil
		},
	}
}

func newNotesCreateCommand(a *app) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Long: `Create a note in your tenant. Free tenants are limited to a few notes;
the backend rejects the note once the limit is reached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title = strings.TrimSpace(title)
			content = strings.TrimSpace(content)
			ctx := cmd.Context()
			provider, err := a.openSession(ctx, cmd)
			if err != nil {
				return err
			}
			user, err := a.requireUser(ctx, provider)
			if err != nil {
				return err
			}
			if err := provider.API().CreateNote(ctx, title, content); err != nil {
				if message := notesapi.Message(err, ""); notesapi.IsPlanLimit(message) {
					printWarning(cmd.ErrOrStderr(), "%s", message)
					if user.Role != notesapi.RoleAdmin {
						return fmt.Errorf("note limit reached; ask an admin to upgrade to Pro")
					}
					return fmt.Errorf("note limit reached; run notesctl upgrade")
				}
				return failure(ctx, provider, "create note", err)
			}
			printSuccess(cmd.OutOrStdout(), "Note created.")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	return cmd
}

func newNotesDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NOTE_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID := strings.TrimSpace(args[0])
			if noteID == "" {
				return fmt.Errorf("note id is required")
			}
			ctx := cmd.Context()
			provider, err := a.openSession(ctx, cmd)
			if err != nil {
				return err
			}
			if _, err := a.requireUser(ctx, provider); err != nil {
				return err
			}
			if err := provider.API().DeleteNote(ctx, noteID); err != nil {
				return failure(ctx, provider, "delete note", err)
			}
			printSuccess(cmd.OutOrStdout(), "Note deleted.")
			return nil
		},
	}
}
