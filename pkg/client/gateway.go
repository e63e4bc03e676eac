// Package client is the campusdesk access layer: it owns every HTTP call to
// the backend services, attaches the session token, and invalidates the
// session when a service answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/naveenspark/campusdesk/pkg/session"
)

// InvalidationReason says why the session was dropped.
type InvalidationReason string

const (
	// ReasonUnauthorized: a service answered 401.
	ReasonUnauthorized InvalidationReason = "unauthorized"
	// ReasonLogout: the user logged out.
	ReasonLogout InvalidationReason = "logout"
)

// InvalidationHandler is called after the session has been cleared and the
// user must log in again. The host application routes it to its login entry
// point.
type InvalidationHandler func(reason InvalidationReason)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 1 << 20 // 1 MB

const defaultTimeout = 30 * time.Second

// Gateway mediates every call to the backend services.
type Gateway struct {
	store       session.Store
	endpoints   Endpoints
	httpClient  *http.Client
	logger      *slog.Logger
	verifyGroup singleflight.Group

	mu           sync.RWMutex
	onInvalidate InvalidationHandler
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithInvalidationHandler registers the callback fired when the session is
// invalidated by a 401 or by Logout.
func WithInvalidationHandler(h InvalidationHandler) Option {
	return func(g *Gateway) {
		g.onInvalidate = h
	}
}

// New creates a Gateway over store. A nil store gets an in-memory one.
func New(store session.Store, endpoints Endpoints, opts ...Option) *Gateway {
	if store == nil {
		store = session.NewMemory()
	}
	g := &Gateway{
		store:     store,
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// timeout bounds work shared between callers, such as a deduplicated
// verify.
func (g *Gateway) timeout() time.Duration {
	if g.httpClient.Timeout > 0 {
		return g.httpClient.Timeout
	}
	return defaultTimeout
}

// SetInvalidationHandler replaces the invalidation callback. Hosts that build
// their UI after the gateway use it to wire navigation late.
func (g *Gateway) SetInvalidationHandler(h InvalidationHandler) {
	g.mu.Lock()
	g.onInvalidate = h
	g.mu.Unlock()
}

// HasSession reports whether a token is stored. It does not prove the token
// is still accepted by the auth service; use CurrentUser for that.
func (g *Gateway) HasSession() bool {
	_, ok := g.store.Token()
	return ok
}

// Token returns the stored bearer token.
func (g *Gateway) Token() (string, bool) {
	return g.store.Token()
}

// Do sends req with the session applied. Content-Type defaults to
// application/json and the stored token is sent as a Bearer credential;
// headers set by the caller win over both.
//
// A 401 response clears the session and fires the invalidation handler
// before Do returns. The response is still returned so the caller can show
// its status or body. It is never retried.
func (g *Gateway) Do(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Authorization") == "" {
		if tok, ok := g.store.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug("request failed",
			"method", req.Method, "url", req.URL.Redacted(),
			"request_id", req.Header.Get(RequestIDHeader), "error", err)
		return nil, fmt.Errorf("do request: %w", err)
	}
	g.logger.Debug("request",
		"method", req.Method, "url", req.URL.Redacted(), "status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeader), "duration", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		g.invalidate(ReasonUnauthorized)
	}
	return resp, nil
}

// invalidate clears the session and notifies the host.
func (g *Gateway) invalidate(reason InvalidationReason) {
	if err := g.store.Clear(); err != nil {
		g.logger.Warn("clear session", "error", err)
	}
	g.logger.Info("session invalidated", "reason", string(reason))
	g.mu.RLock()
	h := g.onInvalidate
	g.mu.RUnlock()
	if h != nil {
		h(reason)
	}
}

// clearIfCurrent drops tok unless the store has already moved on to a newer
// token.
func (g *Gateway) clearIfCurrent(tok string) {
	if cur, ok := g.store.Token(); ok && cur != tok {
		return
	}
	if err := g.store.Clear(); err != nil {
		g.logger.Warn("clear session", "error", err)
	}
}

func (g *Gateway) get(ctx context.Context, rawURL string, out any) error {
	return g.doJSON(ctx, http.MethodGet, rawURL, nil, out)
}

func (g *Gateway) post(ctx context.Context, rawURL string, body any, out any) error {
	return g.doJSON(ctx, http.MethodPost, rawURL, body, out)
}

// doJSON is the service-call path: it goes through Do, so a 401 invalidates
// the session.
func (g *Gateway) doJSON(ctx context.Context, method, rawURL string, body any, out any) error {
	req, err := newJSONRequest(ctx, method, rawURL, body)
	if err != nil {
		return err
	}
	resp, err := g.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	return decodeResponse(resp, out)
}

// exchange is the auth-service path. It bypasses Do: a rejected login or an
// expired token on verify is an answer, not a reason to redirect.
func (g *Gateway) exchange(ctx context.Context, path string, body any, out any) error {
	req, err := newJSONRequest(ctx, http.MethodPost, g.endpoints.API(ServiceAuth)+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	resp, err := g.httpClient.Do(req)
	if err != nil {
		// The logout URL carries the token; keep it out of the error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("do request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	g.logger.Debug("auth exchange", "path", req.URL.Path, "status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeader))
	return decodeResponse(resp, out)
}

func newJSONRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: detailMessage(respBody)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
