// Package requestmeta provides normalized request metadata helpers.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how request metadata resolves request scheme.
//
// X-Forwarded-Proto is only honored when TrustForwardedProto is set, which
// deployments behind a TLS-terminating proxy opt into.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether r should be treated as HTTPS.
func (p SchemePolicy) IsHTTPS(r *http.Request) bool {
	return p.scheme(r) == "https"
}

// SameOrigin reports whether the Origin header, or else the Referer, names
// the same scheme, host and port as r.
func (p SchemePolicy) SameOrigin(r *http.Request) bool {
	if r == nil {
		return false
	}
	scheme := p.scheme(r)
	host, port := hostParts(r.Host)
	if host == "" && r.URL != nil {
		host, port = hostParts(r.URL.Host)
	}
	if host == "" {
		return false
	}
	if port == "" {
		port = defaultPort(scheme)
	}
	proof := strings.TrimSpace(r.Header.Get("Origin"))
	if proof == "" {
		proof = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if proof == "" {
		return false
	}
	return matchesOrigin(proof, scheme, host, port)
}

func matchesOrigin(raw, scheme, host, port string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	originScheme := strings.ToLower(strings.TrimSpace(parsed.Scheme))
	if originScheme == "" || originScheme != scheme {
		return false
	}
	if strings.ToLower(parsed.Hostname()) != host {
		return false
	}
	originPort := parsed.Port()
	if originPort == "" {
		originPort = defaultPort(originScheme)
	}
	return originPort != "" && originPort == port
}

func (p SchemePolicy) scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(r.URL.Scheme); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

func hostParts(rawHost string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
