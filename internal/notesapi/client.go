// Package notesapi is the HTTP client for the external notes backend.
//
// The backend owns authentication, tenants, notes and invitations. It keeps
// its session in a cookie, so every client session carries its own Jar.
package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/platform/requestctx"
	"github.com/louisbranch/tenantnotes/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/louisbranch/tenantnotes/internal/notesapi"
	maxResponseBody = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// Client issues requests against the notes backend.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	jar        *Jar
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its Jar is replaced by the
// session jar.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithJar sets the cookie jar of the client session.
func WithJar(jar *Jar) Option {
	return func(c *Client) { c.jar = jar }
}

// WithTracerProvider sets the provider used for backend call spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// New returns a client for the backend at baseURL. Without WithJar the client
// starts an empty session.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: timeouts.BackendRequest},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.jar == nil {
		jar, err := NewJar(base.String())
		if err != nil {
			return nil, err
		}
		c.jar = jar
	}
	sessionClient := *c.httpClient
	sessionClient.Jar = c.jar
	c.httpClient = &sessionClient
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Jar returns the session cookie jar.
func (c *Client) Jar() *Jar {
	return c.jar
}

// CheckSession resolves the identity behind the current backend session.
func (c *Client) CheckSession(ctx context.Context) (User, error) {
	var envelope checkEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/user/check", "/api/user/check", nil, &envelope); err != nil {
		return User{}, err
	}
	if !envelope.Success || envelope.Data == nil {
		return User{}, ErrNotAuthenticated
	}
	return envelope.Data.user(), nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var envelope loginEnvelope
	body := loginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/user/login", "/api/user/login", body, &envelope); err != nil {
		return User{}, err
	}
	if envelope.Data == nil {
		return User{}, &Error{
			Method:     http.MethodPost,
			Path:       "/api/user/login",
			StatusCode: http.StatusOK,
			Message:    strings.TrimSpace(envelope.Message),
		}
	}
	return envelope.Data.user(), nil
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/user/logout", "/api/user/logout", struct{}{}, nil)
}

// Invite invites email into the caller's tenant with role.
func (c *Client) Invite(ctx context.Context, email string, role Role) error {
	body := inviteRequest{Email: strings.TrimSpace(email), Role: role}
	return c.do(ctx, http.MethodPost, "/api/user/invite", "/api/user/invite", body, nil)
}

// ListNotes returns the notes of the caller's tenant.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var envelope notesEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/note", "/api/note", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []Note{}, nil
	}
	return envelope.Data, nil
}

// CreateNote creates a note in the caller's tenant.
func (c *Client) CreateNote(ctx context.Context, title, content string) error {
	body := createNoteRequest{Title: title, Content: content}
	return c.do(ctx, http.MethodPost, "/api/note", "/api/note", body, nil)
}

// DeleteNote deletes a note by id.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return fmt.Errorf("note id is required")
	}
	return c.do(ctx, http.MethodDelete, "/api/note/"+url.PathEscape(noteID), "/api/note/:id", nil, nil)
}

// UpgradeTenant upgrades the tenant identified by slug to the pro plan.
func (c *Client) UpgradeTenant(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("tenant slug is required")
	}
	return c.do(ctx, http.MethodPost, "/api/tenants/"+url.PathEscape(slug)+"/upgrade", "/api/tenants/:slug/upgrade", struct{}{}, nil)
}

// do sends one JSON request. route is the templated path used for span names.
func (c *Client) do(ctx context.Context, method, path, route string, body any, out any) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "notesapi "+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.template", route),
			attribute.String("server.address", c.base.Host),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, route, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, route, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, route, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, route, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, route, err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if message := strings.TrimSpace(body.Message); message != "" {
		return message
	}
	return strings.TrimSpace(body.Error)
}
