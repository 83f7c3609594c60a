package notesctl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/tenantnotes/internal/notesapi"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

const dateLayout = "2006-01-02"

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf(format, args...)))
}

// renderUser prints who is logged in and the tenant badges.
func renderUser(w io.Writer, user notesapi.User) {
	tenant := tenantName(user.Tenant)
	_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Logged in as"), user.Email)
	_, _ = fmt.Fprintf(w, "%s %s  %s  %s\n",
		labelStyle.Render("Tenant"),
		titleStyle.Render(tenant),
		badgeStyle.Render(strings.ToUpper(string(user.Tenant.Plan))),
		badgeStyle.Render(strings.ToUpper(string(user.Role))),
	)
}

// renderNotes prints the note list with plan usage for free tenants.
func renderNotes(w io.Writer, user notesapi.User, notes []notesapi.Note) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(tenantName(user.Tenant)+" notes"))
	if user.Tenant.Plan == notesapi.PlanFree {
		_, _ = fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("Free plan: %d/%d notes used", len(notes), notesapi.FreePlanNoteLimit)))
	}
	if len(notes) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No notes yet."))
	}
	for _, note := range notes {
		created := ""
		if !note.CreatedAt.IsZero() {
			created = note.CreatedAt.Format(dateLayout)
		}
		_, _ = fmt.Fprintf(w, "%s  %s  %s\n", mutedStyle.Render(note.ID), titleStyle.Render(note.Title), labelStyle.Render(created))
		if content := strings.TrimSpace(note.Content); content != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", content)
		}
	}
	if atFreeLimit(user, len(notes)) {
		if user.Role == notesapi.RoleAdmin {
			printWarning(w, "Free plan limit reached. Run notesctl upgrade for unlimited notes.")
		} else {
			printWarning(w, "Free plan limit reached. Ask an admin to upgrade to Pro.")
		}
	}
}

func tenantName(tenant notesapi.Tenant) string {
	for _, value := range []string{tenant.Name, tenant.Slug} {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return "Your tenant"
}

// atFreeLimit reports whether a free tenant has used up its notes.
func atFreeLimit(user notesapi.User, count int) bool {
	return user.Tenant.Plan == notesapi.PlanFree && count >= notesapi.FreePlanNoteLimit
}
