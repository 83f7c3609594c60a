package session

import "github.com/louisbranch/tenantnotes/internal/notesapi"

// Phase describes where a provider is in its hydrate-then-reconcile cycle.
type Phase int

const (
	// PhaseLoading means no mirror was found and the first check is in flight.
	PhaseLoading Phase = iota
	// PhaseOptimistic means the mirror was hydrated and the first check is in flight.
	PhaseOptimistic
	// PhaseConfirmed means the backend vouched for the current user.
	PhaseConfirmed
	// PhaseRejected means the session has no user.
	PhaseRejected
)

// Resolved reports whether the first check has completed.
func (p Phase) Resolved() bool {
	return p == PhaseConfirmed || p == PhaseRejected
}

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseOptimistic:
		return "optimistic"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of provider state.
type State struct {
	Phase Phase
	// User is nil when the session has no identity.
	User *notesapi.User
}

// Loading reports whether the session check has not resolved yet.
func (s State) Loading() bool {
	return !s.Phase.Resolved()
}

// Authenticated reports whether a confirmed user is present.
func (s State) Authenticated() bool {
	return s.Phase == PhaseConfirmed && s.User != nil
}
