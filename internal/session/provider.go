package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/platform/timeouts"
)

// API is the backend surface a session drives. *notesapi.Client implements it.
type API interface {
	CheckSession(ctx context.Context) (notesapi.User, error)
	Login(ctx context.Context, email, password string) (notesapi.User, error)
	Logout(ctx context.Context) error
	Invite(ctx context.Context, email string, role notesapi.Role) error
	ListNotes(ctx context.Context) ([]notesapi.Note, error)
	CreateNote(ctx context.Context, title, content string) error
	DeleteNote(ctx context.Context, noteID string) error
	UpgradeTenant(ctx context.Context, slug string) error
}

// CookieJar is the part of a backend cookie jar a provider persists.
type CookieJar interface {
	Snapshot() []notesapi.Cookie
	Reset()
}

// Provider holds the authentication state of one client session.
type Provider struct {
	key          string
	api          API
	mirror       Mirror
	cookieStore  CookieStore
	jar          CookieJar
	logger       *log.Logger
	checkTimeout time.Duration

	initOnce sync.Once

	mu       sync.Mutex
	phase    Phase
	user     *notesapi.User
	gen      uint64
	resolved chan struct{}
	values   map[any]any
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithMirror persists the session user.
func WithMirror(mirror Mirror) ProviderOption {
	return func(p *Provider) { p.mirror = mirror }
}

// WithCookies persists jar contents into store after every login or check.
func WithCookies(store CookieStore, jar CookieJar) ProviderOption {
	return func(p *Provider) {
		p.cookieStore = store
		p.jar = jar
	}
}

// WithLogger sets the logger for absorbed failures.
func WithLogger(logger *log.Logger) ProviderOption {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCheckTimeout bounds each session check.
func WithCheckTimeout(timeout time.Duration) ProviderOption {
	return func(p *Provider) {
		if timeout > 0 {
			p.checkTimeout = timeout
		}
	}
}

// NewProvider builds a provider in the loading phase. Call Init to hydrate it
// and start the first check.
func NewProvider(key string, api API, opts ...ProviderOption) *Provider {
	p := &Provider{
		key:          strings.TrimSpace(key),
		api:          api,
		logger:       log.Default(),
		checkTimeout: timeouts.SessionCheck,
		phase:        PhaseLoading,
		resolved:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the client session key.
func (p *Provider) Key() string {
	return p.key
}

// API returns the backend client bound to this session.
func (p *Provider) API() API {
	return p.api
}

// Init hydrates the provider from its mirror and starts the first session
// check in the background. Only the first call has any effect.
func (p *Provider) Init(ctx context.Context) {
	p.initOnce.Do(func() {
		p.hydrate(ctx)
		checkCtx := context.WithoutCancel(ctx)
		go p.Refresh(checkCtx)
	})
}

func (p *Provider) hydrate(ctx context.Context) {
	if p.mirror == nil {
		return
	}
	user, ok, err := p.mirror.LoadUser(ctx, p.key)
	if err != nil {
		p.logger.Printf("session mirror load failed session=%s err=%v", p.key, err)
		return
	}
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.phase == PhaseLoading {
		p.user = &user
		p.phase = PhaseOptimistic
	}
}

// Refresh asks the backend who owns the session. On success the user and
// mirror are updated; on any failure both are cleared. It never fails and
// always resolves the loading phase, unless a later mutation superseded it.
func (p *Provider) Refresh(ctx context.Context) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	checkCtx, cancel := context.WithTimeout(ctx, p.checkTimeout)
	defer cancel()
	user, err := p.api.CheckSession(checkCtx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	persistCtx := context.WithoutCancel(ctx)
	if err != nil {
		if !isExpectedCheckFailure(err) {
			p.logger.Printf("session check failed session=%s err=%v", p.key, err)
		}
		p.user = nil
		p.resolveLocked(PhaseRejected)
		p.deleteMirrorLocked(persistCtx)
		return
	}
	p.user = &user
	p.resolveLocked(PhaseConfirmed)
	p.saveLocked(persistCtx, user)
}

// Clear logs out. The backend call is best-effort; the local user, mirror
// and backend cookies are cleared regardless of its outcome.
func (p *Provider) Clear(ctx context.Context) {
	if err := p.api.Logout(ctx); err != nil {
		p.logger.Printf("session logout failed session=%s err=%v", p.key, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.user = nil
	p.values = nil
	p.resolveLocked(PhaseRejected)
	persistCtx := context.WithoutCancel(ctx)
	p.deleteMirrorLocked(persistCtx)
	if p.jar != nil {
		p.jar.Reset()
	}
	if p.cookieStore != nil {
		if err := p.cookieStore.DeleteCookies(persistCtx, p.key); err != nil {
			p.logger.Printf("session cookie delete failed session=%s err=%v", p.key, err)
		}
	}
}

// SetUser records a user returned by login and persists it.
func (p *Provider) SetUser(ctx context.Context, user notesapi.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.user = &user
	p.resolveLocked(PhaseConfirmed)
	p.saveLocked(context.WithoutCancel(ctx), user)
}

// Login authenticates against the backend and records the user on success.
func (p *Provider) Login(ctx context.Context, email, password string) (notesapi.User, error) {
	user, err := p.api.Login(ctx, email, password)
	if err != nil {
		return notesapi.User{}, err
	}
	p.SetUser(ctx, user)
	return user, nil
}

// Value returns the value stored under key, storing create() first if the
// key is unset. Values live until logout or until the provider is dropped.
func (p *Provider) Value(key any, create func() any) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	if value, ok := p.values[key]; ok {
		return value
	}
	value := create()
	if p.values == nil {
		p.values = map[any]any{}
	}
	p.values[key] = value
	return value
}

// State returns a copy of the current state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// Wait blocks until the first check resolves or ctx ends. The bool reports
// whether the state is resolved.
func (p *Provider) Wait(ctx context.Context) (State, bool) {
	select {
	case <-p.resolved:
		return p.State(), true
	case <-ctx.Done():
		state := p.State()
		return state, state.Phase.Resolved()
	}
}

func (p *Provider) stateLocked() State {
	state := State{Phase: p.phase}
	if p.user != nil {
		user := *p.user
		state.User = &user
	}
	return state
}

func (p *Provider) resolveLocked(phase Phase) {
	wasResolved := p.phase.Resolved()
	p.phase = phase
	if !wasResolved {
		close(p.resolved)
	}
}

func (p *Provider) saveLocked(ctx context.Context, user notesapi.User) {
	if p.mirror != nil {
		if err := p.mirror.SaveUser(ctx, p.key, user); err != nil {
			p.logger.Printf("session mirror save failed session=%s err=%v", p.key, err)
		}
	}
	if p.cookieStore != nil && p.jar != nil {
		if err := p.cookieStore.SaveCookies(ctx, p.key, p.jar.Snapshot()); err != nil {
			p.logger.Printf("session cookie save failed session=%s err=%v", p.key, err)
		}
	}
}

func (p *Provider) deleteMirrorLocked(ctx context.Context) {
	if p.mirror == nil {
		return
	}
	if err := p.mirror.DeleteUser(ctx, p.key); err != nil {
		p.logger.Printf("session mirror delete failed session=%s err=%v", p.key, err)
	}
}

func isExpectedCheckFailure(err error) bool {
	return errors.Is(err, notesapi.ErrNotAuthenticated) || notesapi.IsUnauthorized(err)
}
