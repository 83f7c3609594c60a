// Package notesctl implements the notesctl command line client for the notes
// backend.
package notesctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/platform/config"
	"github.com/louisbranch/tenantnotes/internal/platform/timeouts"
	"github.com/louisbranch/tenantnotes/internal/session"
	"github.com/spf13/cobra"
)

// sessionKey names the single session a CLI profile holds.
const sessionKey = "cli"

var errNotLoggedIn = errors.New("not logged in; run notesctl login")

// Config holds the notesctl configuration.
type Config struct {
	APIBaseURL  string        `env:"TENANTNOTES_API_BASE_URL" envDefault:"http://localhost:5000"`
	SessionFile string        `env:"TENANTNOTES_CLI_SESSION_FILE"`
	Timeout     time.Duration `env:"TENANTNOTES_CLI_TIMEOUT" envDefault:"10s"`
}

// APIFactory builds the backend client for a session.
type APIFactory func(baseURL string, jar *notesapi.Jar) (session.API, error)

// Options wires the root command. Zero values use the process environment,
// stdout/stderr and the HTTP notes client.
type Options struct {
	Out    io.Writer
	Err    io.Writer
	Env    map[string]string
	NewAPI APIFactory
}

type app struct {
	opts Options
	cfg  Config
}

// NewRootCommand builds the notesctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "notesctl",
		Short: "Manage tenant notes from the terminal",
		Long: `notesctl talks to the multi-tenant notes backend.

Log in once and the session is kept in a local file, so later commands
reuse it until you log out or the backend expires it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}

	root.PersistentFlags().String("api-base-url", "", "Notes backend base URL (env TENANTNOTES_API_BASE_URL)")
	root.PersistentFlags().String("session-file", "", "Where the CLI session is stored (env TENANTNOTES_CLI_SESSION_FILE)")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newStatusCommand(a),
		newNotesCommand(a),
		newInviteCommand(a),
		newUpgradeCommand(a),
	)
	return root
}

// Execute runs notesctl against the process environment.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand(Options{})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	var cfg Config
	var err error
	if a.opts.Env != nil {
		err = config.ParseEnvFrom(&cfg, a.opts.Env)
	} else {
		err = config.ParseEnv(&cfg)
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-base-url") {
		cfg.APIBaseURL, _ = flags.GetString("api-base-url")
	}
	if flags.Changed("session-file") {
		cfg.SessionFile, _ = flags.GetString("session-file")
	}
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if strings.TrimSpace(cfg.SessionFile) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locate config dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "tenantnotes", "session.json")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.BackendRequest
	}
	a.cfg = cfg
	return nil
}

// openSession restores the stored session into a provider. The provider is
// not checked yet; callers either log in or call requireUser.
func (a *app) openSession(ctx context.Context, cmd *cobra.Command) (*session.Provider, error) {
	store, err := NewFileStore(a.cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	jar, err := notesapi.NewJar(a.cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}
	cookies, err := store.LoadCookies(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	jar.Restore(cookies)

	api, err := a.newAPI(jar)
	if err != nil {
		return nil, err
	}
	return session.NewProvider(sessionKey, api,
		session.WithMirror(store),
		session.WithCookies(store, jar),
		session.WithLogger(log.New(cmd.ErrOrStderr(), "[NOTESCTL] ", 0)),
		session.WithCheckTimeout(a.cfg.Timeout),
	), nil
}

func (a *app) newAPI(jar *notesapi.Jar) (session.API, error) {
	if a.opts.NewAPI != nil {
		return a.opts.NewAPI(a.cfg.APIBaseURL, jar)
	}
	client, err := notesapi.New(a.cfg.APIBaseURL,
		notesapi.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout}),
		notesapi.WithJar(jar),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// requireUser hydrates the stored session and waits for the backend to
// confirm it.
func (a *app) requireUser(ctx context.Context, provider *session.Provider) (notesapi.User, error) {
	provider.Init(ctx)
	waitCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	state, resolved := provider.Wait(waitCtx)
	if !resolved {
		return notesapi.User{}, fmt.Errorf("session check did not finish within %s", a.cfg.Timeout)
	}
	if !state.Authenticated() {
		return notesapi.User{}, errNotLoggedIn
	}
	return *state.User, nil
}

// failure turns a backend error into a CLI error. A 401 re-checks the session
// so the stored identity is dropped.
func failure(ctx context.Context, provider *session.Provider, action string, err error) error {
	if notesapi.IsUnauthorized(err) {
		provider.Refresh(ctx)
		return errNotLoggedIn
	}
	return fmt.Errorf("%s: %s", action, notesapi.Message(err, err.Error()))
}
