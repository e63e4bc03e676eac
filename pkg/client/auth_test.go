package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/naveenspark/campusdesk/pkg/domain"
	"github.com/naveenspark/campusdesk/pkg/session"
)

// fakeAuth is a scripted auth service.
type fakeAuth struct {
	mu            sync.Mutex
	users         map[string]string // username -> password
	tokens        map[string]verifyResponse
	verifyCode    int // non-zero forces this status on /verify
	verifyCalls   atomic.Int32
	logoutCalls   atomic.Int32
	lastLogout    atomic.Value
	verifyStarted chan struct{} // signalled when a /verify arrives, if set
	verifyGate    chan struct{} // /verify waits for this to close, if set
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		users: map[string]string{"alice": "right"},
		tokens: map[string]verifyResponse{
			"T1": {Valid: true, UserID: 7, Username: "alice", UserType: "admin"},
		},
	}
}

// revoke invalidates tok server-side.
func (f *fakeAuth) revoke(tok string) {
	f.mu.Lock()
	delete(f.tokens, tok)
	f.mu.Unlock()
}

func (f *fakeAuth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/auth/verify" && f.verifyGate != nil {
		select {
		case f.verifyStarted <- struct{}{}:
		default:
		}
		<-f.verifyGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/auth/login":
		var req loginRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		if pw, ok := f.users[req.Username]; !ok || pw != req.Password {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(loginResponse{AccessToken: "T1", TokenType: "bearer"}) //nolint:errcheck

	case "/api/auth/verify":
		f.verifyCalls.Add(1)
		if f.verifyCode != 0 {
			w.WriteHeader(f.verifyCode)
			json.NewEncoder(w).Encode(map[string]string{"detail": "verify unavailable"}) //nolint:errcheck
			return
		}
		var req verifyRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		resp, ok := f.tokens[req.Token]
		if !ok {
			resp = verifyResponse{Valid: false}
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck

	case "/api/auth/register":
		var c domain.Candidate
		json.NewDecoder(r.Body).Decode(&c) //nolint:errcheck
		if _, exists := f.users[c.Username]; exists {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Username already exists"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(domain.Account{ //nolint:errcheck
			ID: 12, Username: c.Username, Email: c.Email, Role: c.Role, IsActive: c.IsActive,
		})

	case "/api/auth/logout":
		f.logoutCalls.Add(1)
		f.lastLogout.Store(r.URL.Query().Get("token"))
		json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"}) //nolint:errcheck

	case "/api/staff/students":
		if r.Header.Get("Authorization") != "Bearer T1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if _, ok := f.tokens["T1"]; !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]domain.Student{}) //nolint:errcheck

	default:
		http.NotFound(w, r)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newFakeAuth()
	srv := httptest.NewServer(auth)
	defer srv.Close()

	store := session.NewMemory()
	g, iv := newTestGateway(t, srv, store)

	out := g.Login(context.Background(), "alice", "wrong")
	if out.Success {
		t.Fatal("expected login failure")
	}
	if out.Reason != "Invalid credentials" {
		t.Errorf("Reason = %q, want %q", out.Reason, "Invalid credentials")
	}
	if !IsStatus(out.Err, http.StatusUnauthorized) {
		t.Errorf("Err = %v, want HTTP 401", out.Err)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected store empty after rejected login")
	}
	if iv.count() != 0 {
		t.Error("a rejected login must not fire the invalidation handler")
	}
}

func TestLoginSuccess(t *testing.T) {
	auth := newFakeAuth()
	srv := httptest.NewServer(auth)
	defer srv.Close()

	store := session.NewMemory()
	g, _ := newTestGateway(t, srv, store)

	out := g.Login(context.Background(), "alice", "right")
	if !out.Success {
		t.Fatalf("expected success, got reason %q (err %v)", out.Reason, out.Err)
	}
	if out.Token != "T1" {
		t.Errorf("Token = %q, want %q", out.Token, "T1")
	}
	want := domain.User{UserID: 7, Username: "alice", UserType: "admin"}
	if out.User == nil || *out.User != want {
		t.Fatalf("User = %+v, want %+v", out.User, want)
	}
	if out.User.Role() != "admin" {
		t.Errorf("Role() = %q, want %q", out.User.Role(), "admin")
	}
	if tok, _ := store.Token(); tok != "T1" {
		t.Errorf("store token = %q, want %q", tok, "T1")
	}

	user, err := g.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error: %v", err)
	}
	if user == nil || *user != want {
		t.Errorf("CurrentUser() = %+v, want %+v", user, want)
	}
}

func TestLoginVerifyFailureLeavesNoToken(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeAuth)
	}{
		{"valid false", func(f *fakeAuth) { f.revoke("T1") }},
		{"verify 401", func(f *fakeAuth) { f.verifyCode = http.StatusUnauthorized }},
		{"verify 500", func(f *fakeAuth) { f.verifyCode = http.StatusInternalServerError }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := newFakeAuth()
			tt.setup(auth)
			srv := httptest.NewServer(auth)
			defer srv.Close()

			store := session.NewMemory()
			g, _ := newTestGateway(t, srv, store)

			out := g.Login(context.Background(), "alice", "right")
			if out.Success {
				t.Fatal("expected failure when verify fails")
			}
			if out.User != nil {
				t.Errorf("User = %+v, want nil", out.User)
			}
			if out.Reason != MsgVerifyFailed {
				t.Errorf("Reason = %q, want %q", out.Reason, MsgVerifyFailed)
			}
			if _, ok := store.Token(); ok {
				t.Error("expected no orphaned token after failed verify")
			}
		})
	}
}

func TestLoginFallbackReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`<html>nope</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, session.NewMemory())
	out := g.Login(context.Background(), "alice", "wrong")
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Reason != MsgInvalidCredentials {
		t.Errorf("Reason = %q, want %q", out.Reason, MsgInvalidCredentials)
	}
}

func TestLoginTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	store := session.NewMemory()
	g, _ := newTestGateway(t, srv, store)
	out := g.Login(context.Background(), "alice", "right")
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Err == nil {
		t.Error("expected Err to carry the transport failure")
	}
	if out.Reason != MsgLoginFailed {
		t.Errorf("Reason = %q, want %q", out.Reason, MsgLoginFailed)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected store empty")
	}
}

func TestCurrentUserWithoutTokenMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, session.NewMemory())
	user, err := g.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error: %v", err)
	}
	if user != nil {
		t.Errorf("CurrentUser() = %+v, want nil", user)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server called %d times, want 0", n)
	}
}

func TestCurrentUserInvalidTokenClears(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeAuth)
	}{
		{"valid false", func(f *fakeAuth) { f.revoke("T1") }},
		{"verify 401", func(f *fakeAuth) { f.verifyCode = http.StatusUnauthorized }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := newFakeAuth()
			tt.setup(auth)
			srv := httptest.NewServer(auth)
			defer srv.Close()

			store := session.NewMemory()
			store.Set("T1") //nolint:errcheck
			g, iv := newTestGateway(t, srv, store)

			user, err := g.CurrentUser(context.Background())
			if err != nil {
				t.Fatalf("CurrentUser() error: %v", err)
			}
			if user != nil {
				t.Errorf("CurrentUser() = %+v, want nil", user)
			}
			if _, ok := store.Token(); ok {
				t.Error("expected session cleared")
			}
			if iv.count() != 0 {
				t.Error("verify failure must not fire the navigation handler")
			}
		})
	}
}

func TestCurrentUserServerErrorKeepsToken(t *testing.T) {
	auth := newFakeAuth()
	auth.verifyCode = http.StatusBadGateway
	srv := httptest.NewServer(auth)
	defer srv.Close()

	store := session.NewMemory()
	store.Set("T1") //nolint:errcheck
	g, _ := newTestGateway(t, srv, store)

	_, err := g.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error for 502 from verify")
	}
	if !IsStatus(err, http.StatusBadGateway) {
		t.Errorf("err = %v, want HTTP 502", err)
	}
	if tok, _ := store.Token(); tok != "T1" {
		t.Errorf("store token = %q, want kept %q", tok, "T1")
	}
}

// gatedVerify makes /verify block until the returned release is called.
func gatedVerify(auth *fakeAuth) (started <-chan struct{}, release func()) {
	auth.verifyStarted = make(chan struct{}, 4)
	auth.verifyGate = make(chan struct{})
	var once sync.Once
	return auth.verifyStarted, func() { once.Do(func() { close(auth.verifyGate) }) }
}

type userResult struct {
	user *domain.User
	err  error
}

func currentUserAsync(ctx context.Context, g *Gateway) <-chan userResult {
	ch := make(chan userResult, 1)
	go func() {
		u, err := g.CurrentUser(ctx)
		ch <- userResult{u, err}
	}()
	return ch
}

func TestCurrentUserConcurrentCallsShareVerify(t *testing.T) {
	auth := newFakeAuth()
	started, release := gatedVerify(auth)
	srv := httptest.NewServer(auth)
	defer srv.Close()
	defer release()

	store := session.NewMemory()
	store.Set("T1") //nolint:errcheck
	g, _ := newTestGateway(t, srv, store)

	first := currentUserAsync(context.Background(), g)
	<-started
	var rest []<-chan userResult
	for range 4 {
		rest = append(rest, currentUserAsync(context.Background(), g))
	}
	time.Sleep(50 * time.Millisecond) // let the callers join the in-flight verify
	release()

	for i, ch := range append(rest, first) {
		r := <-ch
		if r.err != nil || r.user == nil || r.user.Username != "alice" {
			t.Errorf("caller %d: user = %+v, err = %v; want alice", i, r.user, r.err)
		}
	}
	if n := auth.verifyCalls.Load(); n != 1 {
		t.Errorf("verify calls = %d, want 1", n)
	}
}

func TestCurrentUserCancelOnlyAffectsCaller(t *testing.T) {
	auth := newFakeAuth()
	started, release := gatedVerify(auth)
	srv := httptest.NewServer(auth)
	defer srv.Close()
	defer release()

	store := session.NewMemory()
	store.Set("T1") //nolint:errcheck
	g, _ := newTestGateway(t, srv, store)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	a := currentUserAsync(ctxA, g)
	<-started
	b := currentUserAsync(context.Background(), g)
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case r := <-a:
		if !errors.Is(r.err, context.Canceled) {
			t.Errorf("cancelled caller err = %v, want context.Canceled", r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller still waiting on the shared verify")
	}

	release()
	r := <-b
	if r.err != nil {
		t.Fatalf("uncancelled caller err = %v, want nil", r.err)
	}
	if r.user == nil || r.user.Username != "alice" {
		t.Errorf("uncancelled caller user = %+v, want alice", r.user)
	}
	if _, ok := store.Token(); !ok {
		t.Error("a cancelled caller must not clear the session")
	}
}

func TestRequestUnauthorizedThenCurrentUserIsAnonymous(t *testing.T) {
	auth := newFakeAuth()
	srv := httptest.NewServer(auth)
	defer srv.Close()

	store := session.NewMemory()
	g, iv := newTestGateway(t, srv, store)

	if out := g.Login(context.Background(), "alice", "right"); !out.Success {
		t.Fatalf("login failed: %q", out.Reason)
	}

	// The token is revoked server-side.
	auth.revoke("T1")
	_, err := g.ListStudents(context.Background(), domain.StudentFilter{})
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("ListStudents() err = %v, want HTTP 401", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("expected session cleared after 401")
	}
	if got := iv.count(); got != 1 {
		t.Errorf("invalidation handler called %d times, want 1", got)
	}

	before := auth.verifyCalls.Load()
	user, err := g.CurrentUser(context.Background())
	if err != nil || user != nil {
		t.Errorf("CurrentUser() = %+v, %v; want nil, nil", user, err)
	}
	if auth.verifyCalls.Load() != before {
		t.Error("CurrentUser() contacted the server without a token")
	}
}

func TestLogout(t *testing.T) {
	auth := newFakeAuth()
	srv := httptest.NewServer(auth)
	defer srv.Close()

	store := session.NewMemory()
	store.Set("T1") //nolint:errcheck
	g, iv := newTestGateway(t, srv, store)

	g.Logout(context.Background())
	if _, ok := store.Token(); ok {
		t.Error("expected session cleared after logout")
	}
	if got := iv.count(); got != 1 || iv.reasons[0] != ReasonLogout {
		t.Errorf("invalidations = %v, want one %q", iv.reasons, ReasonLogout)
	}
	if auth.logoutCalls.Load() != 1 {
		t.Errorf("server logout called %d times, want 1", auth.logoutCalls.Load())
	}
	if got, _ := auth.lastLogout.Load().(string); got != "T1" {
		t.Errorf("server logout token = %q, want %q", got, "T1")
	}

	// Logging out again is harmless and does not call the server.
	g.Logout(context.Background())
	if auth.logoutCalls.Load() != 1 {
		t.Error("second logout without a token must not call the server")
	}
}

func TestLogoutServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	store := session.NewMemory()
	store.Set("T1") //nolint:errcheck
	g, iv := newTestGateway(t, srv, store)

	g.Logout(context.Background())
	if _, ok := store.Token(); ok {
		t.Error("expected session cleared even when the server is down")
	}
	if iv.count() != 1 {
		t.Error("expected navigation to login")
	}
}

func TestLogoutNeverLogsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := session.NewMemory()
	store.Set("secret-token") //nolint:errcheck
	g := New(store, testEndpoints(srv.URL), WithLogger(logger))

	g.Logout(context.Background())
	if !strings.Contains(logs.String(), "server-side logout") {
		t.Fatalf("expected the failed revoke to be logged, got %q", logs.String())
	}
	if strings.Contains(logs.String(), "secret-token") {
		t.Errorf("log leaked the token: %q", logs.String())
	}
}

func TestRegister(t *testing.T) {
	auth := newFakeAuth()
	srv := httptest.NewServer(auth)
	defer srv.Close()

	store := session.NewMemory()
	g, _ := newTestGateway(t, srv, store)

	out := g.Register(context.Background(), domain.Candidate{Username: "bob", Email: "bob@example.com", Password: "pw"})
	if !out.Success {
		t.Fatalf("expected success, got %q", out.Reason)
	}
	if out.Account == nil || out.Account.Username != "bob" {
		t.Fatalf("Account = %+v, want username bob", out.Account)
	}
	if out.Account.Role != domain.RoleStudent || !out.Account.IsActive {
		t.Errorf("Account role/active = %q/%v, want student/true", out.Account.Role, out.Account.IsActive)
	}
	if _, ok := store.Token(); ok {
		t.Error("registration must not create a session")
	}

	out = g.Register(context.Background(), domain.Candidate{Username: "alice", Password: "pw"})
	if out.Success {
		t.Fatal("expected failure for duplicate username")
	}
	if out.Reason != "Username already exists" {
		t.Errorf("Reason = %q, want %q", out.Reason, "Username already exists")
	}
}

func TestRegisterFallbackReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, session.NewMemory())
	out := g.Register(context.Background(), domain.Candidate{Username: "bob"})
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Reason != MsgRegisterFailed {
		t.Errorf("Reason = %q, want %q", out.Reason, MsgRegisterFailed)
	}
}
