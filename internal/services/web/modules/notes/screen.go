package notes

import (
	"slices"
	"strings"
	"sync"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/session"
)

// banner is the persistent error shown above the notes list. Message is
// backend text; Key is a localization fallback.
type banner struct {
	Message string
	Key     string
}

func (b banner) empty() bool {
	return b.Message == "" && b.Key == ""
}

// screen is the per-session state the notes page keeps between requests.
type screen struct {
	userID string
	// notes is the last successfully fetched list, served when a refetch fails.
	notes       []notesapi.Note
	banner      banner
	inviteEmail string
	inviteRole  notesapi.Role
}

type screenKey struct{}

// screenCell holds the notes screen of one session. It lives on the session
// provider, so logging out or dropping an idle session discards it.
type screenCell struct {
	mu     sync.Mutex
	screen screen
	set    bool
}

func screenOf(provider *session.Provider) *screenCell {
	return provider.Value(screenKey{}, func() any { return &screenCell{} }).(*screenCell)
}

// get returns a copy of the screen. A screen owned by another user starts
// over.
func (c *screenCell) get(userID string) screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.lockedScreen(userID)
	current.notes = slices.Clone(current.notes)
	return current
}

func (c *screenCell) update(userID string, fn func(*screen)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.lockedScreen(userID)
	fn(&current)
	c.screen = current
	c.set = true
}

func (c *screenCell) lockedScreen(userID string) screen {
	userID = strings.TrimSpace(userID)
	if !c.set || c.screen.userID != userID {
		return screen{userID: userID, inviteRole: notesapi.RoleMember}
	}
	return c.screen
}
