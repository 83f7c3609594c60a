package notesapi

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Cookie is a persisted backend cookie. The jar only exposes name and value
// for outgoing requests, which is all a restored session needs.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Jar holds the backend session cookies of one client session.
type Jar struct {
	base  *url.URL
	inner *cookiejar.Jar
}

// NewJar returns an empty jar scoped to the backend at baseURL.
func NewJar(baseURL string) (*Jar, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Jar{base: base, inner: inner}, nil
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// Snapshot returns the cookies the jar would send to the backend.
func (j *Jar) Snapshot() []Cookie {
	if j == nil {
		return nil
	}
	stored := j.inner.Cookies(j.base)
	out := make([]Cookie, 0, len(stored))
	for _, cookie := range stored {
		out = append(out, Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return out
}

// Restore seeds the jar with previously persisted cookies.
func (j *Jar) Restore(cookies []Cookie) {
	if j == nil || len(cookies) == 0 {
		return
	}
	httpCookies := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		name := strings.TrimSpace(cookie.Name)
		if name == "" {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:   name,
			Value:  cookie.Value,
			Path:   "/",
			Secure: j.base.Scheme == "https",
		})
	}
	j.inner.SetCookies(j.base, httpCookies)
}

// Reset drops every cookie held for the backend.
func (j *Jar) Reset() {
	if j == nil {
		return
	}
	stored := j.inner.Cookies(j.base)
	if len(stored) == 0 {
		return
	}
	expired := make([]*http.Cookie, 0, len(stored))
	for _, cookie := range stored {
		expired = append(expired, &http.Cookie{Name: cookie.Name, Path: "/", MaxAge: -1})
	}
	j.inner.SetCookies(j.base, expired)
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url host is required")
	}
	base.Path = strings.TrimSuffix(base.Path, "/")
	base.RawQuery = ""
	base.Fragment = ""
	return base, nil
}
