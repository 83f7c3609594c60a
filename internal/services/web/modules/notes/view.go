package notes

import (
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/tenantnotes/internal/notesapi"
	webi18n "github.com/louisbranch/tenantnotes/internal/services/web/i18n"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tenantnotes/internal/services/web/templates"
	"golang.org/x/text/language"
)

var dateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"pt-BR": "02/01/2006",
}

func notesPage(view webtemplates.NotesView) templ.Component {
	return webtemplates.Notes(view)
}

// buildView derives the notes screen from the session user and notes. The
// invite modal only opens for admins.
func buildView(loc webi18n.Localizer, tag language.Tag, user notesapi.User, notes []notesapi.Note, sc screen, inviteOpen bool) webtemplates.NotesView {
	notesCopy := webi18n.Notes(loc)
	plan := user.Tenant.Plan
	count := len(notes)

	tenantName := strings.TrimSpace(user.Tenant.Name)
	if tenantName == "" {
		tenantName = notesCopy.TenantFallback
	}
	inviteRole := sc.inviteRole
	if inviteRole == "" {
		inviteRole = notesapi.RoleMember
	}

	view := webtemplates.NotesView{
		Copy:          notesCopy,
		TenantName:    tenantName,
		LoggedInAs:    webi18n.T(loc, "notes.logged_in_as", user.Email),
		PlanBadge:     webi18n.T(loc, "notes.plan_badge", string(plan)),
		RoleBadge:     webi18n.T(loc, "notes.role_badge", string(user.Role)),
		PlanPro:       plan == notesapi.PlanPro,
		Banner:        bannerText(loc, sc.banner),
		AtFreeLimit:   atFreeLimit(plan, count),
		LimitMessage:  webi18n.T(loc, "notes.limit_reached", notesapi.FreePlanNoteLimit),
		CanCreate:     canCreate(plan, count),
		IsAdmin:       user.IsAdmin(),
		ShowUpgrade:   user.IsAdmin() && plan == notesapi.PlanFree,
		InviteOpen:    inviteOpen && user.IsAdmin(),
		InviteEmail:   sc.inviteEmail,
		InviteRole:    string(inviteRole),
		Notes:         make([]webtemplates.NoteView, 0, count),
		CreateAction:  routepath.Notes,
		UpgradeAction: routepath.NotesUpgrade,
		InviteAction:  routepath.NotesInvite,
		InviteHref:    routepath.NotesWithInvite(),
		CloseHref:     routepath.Notes,
		LogoutAction:  routepath.Logout,
	}
	for _, note := range notes {
		view.Notes = append(view.Notes, webtemplates.NoteView{
			ID:           note.ID,
			Title:        note.Title,
			Content:      note.Content,
			Created:      formatDate(tag, note.CreatedAt),
			DeleteAction: routepath.NoteDeletePath(note.ID),
		})
	}
	return view
}

func bannerText(loc webi18n.Localizer, b banner) string {
	if b.empty() {
		return ""
	}
	if b.Message != "" {
		return b.Message
	}
	return webi18n.T(loc, b.Key)
}

func formatDate(tag language.Tag, value time.Time) string {
	if value.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[tag.String()]
	if !ok {
		layout = dateLayouts["en-US"]
	}
	return value.Format(layout)
}
