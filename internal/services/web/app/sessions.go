package app

import (
	"context"
	"log"
	"net/http"

	"github.com/louisbranch/tenantnotes/internal/platform/id"
	"github.com/louisbranch/tenantnotes/internal/platform/requestctx"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/tenantnotes/internal/session"
)

// SessionSource hands out the provider for a browser session id.
// *session.Registry implements it.
type SessionSource interface {
	Session(ctx context.Context, key string) (*session.Provider, error)
}

// WithSessions binds every request to a session provider keyed by the signed
// session cookie, issuing a fresh id when the cookie is missing or invalid.
// A provider failure serves the request anonymously.
func WithSessions(codec *sessioncookie.Codec, sessions SessionSource, logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if codec == nil || sessions == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := codec.Read(r)
			if !ok {
				newID, err := id.NewID()
				if err != nil {
					logger.Printf("session id generation failed err=%v", err)
					next.ServeHTTP(w, r)
					return
				}
				if err := codec.Write(w, r, newID); err != nil {
					logger.Printf("session cookie write failed err=%v", err)
					next.ServeHTTP(w, r)
					return
				}
				sessionID = newID
			}

			ctx := requestctx.WithSessionID(r.Context(), sessionID)
			provider, err := sessions.Session(ctx, sessionID)
			if err != nil {
				logger.Printf("session resolve failed session=%s err=%v", sessionID, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithProvider(ctx, provider)))
		})
	}
}

// resolveSession reads the provider bound by WithSessions.
func resolveSession(r *http.Request) (*session.Provider, bool) {
	if r == nil {
		return nil, false
	}
	return session.FromContext(r.Context())
}
