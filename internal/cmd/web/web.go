// Package web parses web command configuration and launches the web service.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/tenantnotes/internal/platform/config"
	platformotel "github.com/louisbranch/tenantnotes/internal/platform/otel"
	"github.com/louisbranch/tenantnotes/internal/platform/timeouts"
	"github.com/louisbranch/tenantnotes/internal/services/web"
	webstorage "github.com/louisbranch/tenantnotes/internal/services/web/storage"
	websqlite "github.com/louisbranch/tenantnotes/internal/services/web/storage/sqlite"
	"go.opentelemetry.io/otel"
)

const (
	// DevAPIBaseURL is the notes backend used when serving on localhost.
	DevAPIBaseURL = "http://localhost:5000"
	// ProdAPIBaseURL is the hosted notes backend.
	ProdAPIBaseURL = "https://assignment-backend-teal.vercel.app"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string `env:"TENANTNOTES_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	// PublicHost is the host browsers use; it selects the default backend.
	PublicHost          string        `env:"TENANTNOTES_WEB_PUBLIC_HOST" envDefault:"localhost"`
	APIBaseURL          string        `env:"TENANTNOTES_API_BASE_URL"`
	DBPath              string        `env:"TENANTNOTES_WEB_DB_PATH" envDefault:"data/web.db"`
	SessionKey          string        `env:"TENANTNOTES_WEB_SESSION_KEY"`
	ConfirmWait         time.Duration `env:"TENANTNOTES_WEB_CONFIRM_WAIT" envDefault:"1500ms"`
	RequestTimeout      time.Duration `env:"TENANTNOTES_WEB_REQUEST_TIMEOUT" envDefault:"10s"`
	TrustForwardedProto bool          `env:"TENANTNOTES_WEB_TRUST_FORWARDED_PROTO"`
	ShowTestAccounts    bool          `env:"TENANTNOTES_WEB_SHOW_TEST_ACCOUNTS" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return parseFlags(cfg, fs, args)
}

// ParseConfigFrom is ParseConfig reading vars instead of the process
// environment.
func ParseConfigFrom(fs *flag.FlagSet, args []string, vars map[string]string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvFrom(&cfg, vars); err != nil {
		return Config{}, err
	}
	return parseFlags(cfg, fs, args)
}

func parseFlags(cfg Config, fs *flag.FlagSet, args []string) (Config, error) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.PublicHost, "public-host", cfg.PublicHost, "Host browsers reach the web service on")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Notes backend base URL (default picked from public host)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite path for session mirrors; empty keeps them in memory")
	fs.DurationVar(&cfg.ConfirmWait, "confirm-wait", cfg.ConfirmWait, "How long pages wait for the session check")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto")
	fs.BoolVar(&cfg.ShowTestAccounts, "show-test-accounts", cfg.ShowTestAccounts, "List demo accounts on the login page")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.APIBaseURL = ResolveAPIBaseURL(cfg.APIBaseURL, cfg.PublicHost)
	if len(strings.TrimSpace(cfg.SessionKey)) < 32 {
		return Config{}, fmt.Errorf("TENANTNOTES_WEB_SESSION_KEY must be at least 32 characters")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = timeouts.BackendRequest
	}
	return cfg, nil
}

// ResolveAPIBaseURL returns explicit when set, else the local backend for a
// localhost public host and the hosted backend otherwise.
func ResolveAPIBaseURL(explicit, publicHost string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	if strings.Contains(strings.ToLower(publicHost), "localhost") {
		return DevAPIBaseURL
	}
	return ProdAPIBaseURL
}

// Run starts the web service.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := platformotel.Setup(ctx, "tenantnotes-web")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			log.Printf("tracing shutdown failed err=%v", err)
		}
	}()

	var store webstorage.Store
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		sqliteStore, err := websqlite.Open(path)
		if err != nil {
			return fmt.Errorf("open web store: %w", err)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				log.Printf("web store close failed err=%v", err)
			}
		}()
		store = sqliteStore
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		APIBaseURL:          cfg.APIBaseURL,
		SessionKey:          []byte(cfg.SessionKey),
		ConfirmWait:         cfg.ConfirmWait,
		TrustForwardedProto: cfg.TrustForwardedProto,
		ShowTestAccounts:    cfg.ShowTestAccounts,
		Store:               store,
		HTTPClient:          newHTTPClient(cfg.RequestTimeout),
		TracerProvider:      otel.GetTracerProvider(),
		Logger:              log.Default(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	log.Printf("web listening addr=%s api=%s", cfg.HTTPAddr, cfg.APIBaseURL)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
