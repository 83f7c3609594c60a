package session

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"go.opentelemetry.io/otel/trace"
)

// RegistryConfig wires the collaborators shared by every session.
type RegistryConfig struct {
	BaseURL        string
	Mirror         Mirror
	Cookies        CookieStore
	HTTPClient     *http.Client
	TracerProvider trace.TracerProvider
	Logger         *log.Logger
	CheckTimeout   time.Duration
}

// Registry hands out one provider per client session key.
type Registry struct {
	cfg RegistryConfig

	mu        sync.Mutex
	providers map[string]*Provider
	lastSeen  map[string]time.Time
	now       func() time.Time
}

// NewRegistry validates cfg and returns an empty registry. A nil mirror or
// cookie store falls back to process memory.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	if _, err := notesapi.NewJar(cfg.BaseURL); err != nil {
		return nil, err
	}
	if cfg.Mirror == nil || cfg.Cookies == nil {
		memory := NewMemoryStore()
		if cfg.Mirror == nil {
			cfg.Mirror = memory
		}
		if cfg.Cookies == nil {
			cfg.Cookies = memory
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Registry{
		cfg:       cfg,
		providers: map[string]*Provider{},
		lastSeen:  map[string]time.Time{},
		now:       time.Now,
	}, nil
}

// Session returns the initialized provider for key, creating it with its
// persisted backend cookies on first use.
func (r *Registry) Session(ctx context.Context, key string) (*Provider, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("session key is required")
	}

	r.mu.Lock()
	provider, ok := r.providers[key]
	if !ok {
		var err error
		provider, err = r.newProvider(ctx, key)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		r.providers[key] = provider
	}
	r.lastSeen[key] = r.now()
	r.mu.Unlock()

	provider.Init(ctx)
	return provider, nil
}

// Forget drops the in-memory provider for key. Persisted state is kept.
func (r *Registry) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key = strings.TrimSpace(key)
	delete(r.providers, key)
	delete(r.lastSeen, key)
}

// PruneIdle drops the in-memory providers not used since cutoff and reports
// how many were dropped. Persisted state is kept, so a returning visitor is
// rebuilt from the mirror and cookies.
func (r *Registry) PruneIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.providers, key)
			delete(r.lastSeen, key)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}

func (r *Registry) newProvider(ctx context.Context, key string) (*Provider, error) {
	jar, err := notesapi.NewJar(r.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	cookies, err := r.cfg.Cookies.LoadCookies(ctx, key)
	if err != nil {
		r.cfg.Logger.Printf("session cookie load failed session=%s err=%v", key, err)
	} else {
		jar.Restore(cookies)
	}

	opts := []notesapi.Option{notesapi.WithJar(jar)}
	if r.cfg.HTTPClient != nil {
		opts = append(opts, notesapi.WithHTTPClient(r.cfg.HTTPClient))
	}
	if r.cfg.TracerProvider != nil {
		opts = append(opts, notesapi.WithTracerProvider(r.cfg.TracerProvider))
	}
	client, err := notesapi.New(r.cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("session client: %w", err)
	}

	return NewProvider(key, client,
		WithMirror(r.cfg.Mirror),
		WithCookies(r.cfg.Cookies, jar),
		WithLogger(r.cfg.Logger),
		WithCheckTimeout(r.cfg.CheckTimeout),
	), nil
}
