// Package sessioncookie centralizes the signed browser session cookie.
//
// The cookie carries an HS256 token whose subject is the browser session id.
// Nothing else about the session lives in the browser.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/requestmeta"
)

// Name is the canonical web session cookie name.
const Name = "web_session"

const (
	issuer     = "tenantnotes-web"
	minKeySize = 32
	// DefaultTTL is how long a browser keeps its session id.
	DefaultTTL = 30 * 24 * time.Hour
)

// ErrInvalid reports a cookie that was not issued by this codec or expired.
var ErrInvalid = errors.New("sessioncookie: invalid session token")

// Codec signs and verifies session cookies.
type Codec struct {
	key    []byte
	ttl    time.Duration
	policy requestmeta.SchemePolicy
	now    func() time.Time
}

// NewCodec returns a codec signing with key. ttl <= 0 uses DefaultTTL.
func NewCodec(key []byte, ttl time.Duration, policy requestmeta.SchemePolicy) (*Codec, error) {
	if len(key) < minKeySize {
		return nil, fmt.Errorf("session key must be at least %d bytes", minKeySize)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{key: append([]byte(nil), key...), ttl: ttl, policy: policy, now: time.Now}, nil
}

// Encode returns a signed token for sessionID.
func (c *Codec) Encode(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", errors.New("session id is required")
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its session id.
func (c *Codec) Decode(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrInvalid
	}
	return subject, nil
}

// Read returns the verified session id carried by r.
func (c *Codec) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	sessionID, err := c.Decode(cookie.Value)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

// Write sets a signed session cookie for sessionID.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, sessionID string) error {
	if w == nil {
		return nil
	}
	token, err := c.Encode(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Present reports whether r carries any session cookie, verified or not.
func Present(r *http.Request) bool {
	if r == nil {
		return false
	}
	cookie, err := r.Cookie(Name)
	return err == nil && strings.TrimSpace(cookie.Value) != ""
}
