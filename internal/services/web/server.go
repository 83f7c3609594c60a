// Package web hosts the browser-facing notes client.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/tenantnotes/internal/platform/timeouts"
	webapp "github.com/louisbranch/tenantnotes/internal/services/web/app"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/services/web/modules"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/httpx"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/observability"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
	webstatic "github.com/louisbranch/tenantnotes/internal/services/web/static"
	webstorage "github.com/louisbranch/tenantnotes/internal/services/web/storage"
	"github.com/louisbranch/tenantnotes/internal/session"
	"go.opentelemetry.io/otel/trace"
)

const (
	// pruneInterval is how often stale sessions are removed.
	pruneInterval = 10 * time.Minute
	// sessionIdleTTL is how long an unused session stays in memory.
	sessionIdleTTL = 30 * time.Minute
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	// SessionKey signs browser session cookies; at least 32 bytes.
	SessionKey          []byte
	ConfirmWait         time.Duration
	TrustForwardedProto bool
	ShowTestAccounts    bool
	// Store persists session mirrors across restarts. Nil keeps them in memory.
	Store          webstorage.Store
	HTTPClient     *http.Client
	TracerProvider trace.TracerProvider
	Logger         *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      webstorage.Store
	sessions   *session.Registry
	logger     *log.Logger
}

// NewHandler builds the root handler: static assets, health and the module
// registry behind session binding.
func NewHandler(cfg Config) (http.Handler, error) {
	h, _, err := newHandler(cfg)
	return h, err
}

func newHandler(cfg Config) (http.Handler, *session.Registry, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}

	registryCfg := session.RegistryConfig{
		BaseURL:        cfg.APIBaseURL,
		HTTPClient:     cfg.HTTPClient,
		TracerProvider: cfg.TracerProvider,
		Logger:         logger,
		CheckTimeout:   timeouts.SessionCheck,
	}
	if cfg.Store != nil {
		registryCfg.Mirror = cfg.Store
		registryCfg.Cookies = cfg.Store
	}
	registry, err := session.NewRegistry(registryCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("session registry: %w", err)
	}
	codec, err := sessioncookie.NewCodec(cfg.SessionKey, sessioncookie.DefaultTTL, policy)
	if err != nil {
		return nil, nil, fmt.Errorf("session cookie: %w", err)
	}

	moduleCfg := modules.Config{ShowTestAccounts: cfg.ShowTestAccounts, Logger: logger}
	h, err := webapp.BuildRootHandler(webapp.Config{
		Dependencies:     module.Dependencies{ConfirmWait: cfg.ConfirmWait},
		PublicModules:    modules.DefaultPublicModules(moduleCfg),
		ProtectedModules: modules.DefaultProtectedModules(moduleCfg),
		SchemePolicy:     policy,
		Cookies:          codec,
		Sessions:         registry,
		Logger:           logger,
	})
	if err != nil {
		return nil, nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.HandleFunc("GET "+routepath.Health, handleHealth)
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), registry, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, sessions, err := newHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:    cfg.Store,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go s.pruneSessions(pruneCtx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// pruneSessions removes stale sessions every pruneInterval until ctx ends.
func (s *Server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.pruneOnce(ctx, now)
		}
	}
}

// pruneOnce drops sessions idle for sessionIdleTTL from memory and mirrors
// older than the cookie lifetime from the store.
func (s *Server) pruneOnce(ctx context.Context, now time.Time) {
	if s.sessions != nil {
		if evicted := s.sessions.PruneIdle(now.Add(-sessionIdleTTL)); evicted > 0 {
			s.logger.Printf("session prune evicted=%d", evicted)
		}
	}
	if s.store == nil {
		return
	}
	removed, err := s.store.PruneSessions(ctx, now.Add(-sessioncookie.DefaultTTL))
	if err != nil {
		s.logger.Printf("session prune failed err=%v", err)
		return
	}
	if removed > 0 {
		s.logger.Printf("session prune removed=%d", removed)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
