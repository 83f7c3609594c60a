package notesapi

import (
	"net"
	"strings"
)

const (
	// DefaultDevBaseURL is the backend used while developing on localhost.
	DefaultDevBaseURL = "http://localhost:5000"
	// DefaultProdBaseURL is the deployed backend.
	DefaultProdBaseURL = "https://assignment-backend-teal.vercel.app"
)

// Endpoints selects the backend base URL at startup.
type Endpoints struct {
	// Explicit wins over host-based selection when set.
	Explicit string
	Dev      string
	Prod     string
}

// Resolve picks the backend for the public host the client is served from:
// the explicit URL when configured, the dev URL for localhost, else prod.
func (e Endpoints) Resolve(publicHost string) string {
	if explicit := strings.TrimSpace(e.Explicit); explicit != "" {
		return explicit
	}
	dev := strings.TrimSpace(e.Dev)
	if dev == "" {
		dev = DefaultDevBaseURL
	}
	prod := strings.TrimSpace(e.Prod)
	if prod == "" {
		prod = DefaultProdBaseURL
	}
	if isLocalHost(publicHost) {
		return dev
	}
	return prod
}

func isLocalHost(hostport string) bool {
	host := strings.TrimSpace(hostport)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.Contains(strings.ToLower(host), "localhost")
}
