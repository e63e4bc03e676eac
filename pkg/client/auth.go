package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/naveenspark/campusdesk/pkg/domain"
)

// Failure reasons shown when the server gives none.
const (
	MsgInvalidCredentials = "invalid username or password"
	MsgLoginFailed        = "login failed"
	MsgVerifyFailed       = "could not verify session"
	MsgRegisterFailed     = "registration failed"
)

// Outcome is the result of an auth exchange. Failures are reported here,
// never as a returned error: Reason is ready to display, and Err carries the
// underlying cause when there is one (transport, decode, or HTTP error).
type Outcome struct {
	Success bool
	User    *domain.User
	Token   string
	Account *domain.Account
	Reason  string
	Err     error
}

func failure(reason string, err error) Outcome {
	return Outcome{Reason: reason, Err: err}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	UserType string `json:"user_type"`
}

// Login exchanges credentials for a token, stores it, and verifies it.
// Login only succeeds once verification returns a user; if verification
// fails the token is removed again.
func (g *Gateway) Login(ctx context.Context, username, password string) Outcome {
	var tok loginResponse
	if err := g.exchange(ctx, "/login", loginRequest{Username: username, Password: password}, &tok); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			reason := httpErr.Message
			if reason == "" {
				reason = MsgInvalidCredentials
			}
			return failure(reason, fmt.Errorf("client.Login: %w", err))
		}
		return failure(MsgLoginFailed, fmt.Errorf("client.Login: %w", err))
	}
	if tok.AccessToken == "" {
		return failure(MsgLoginFailed, errors.New("client.Login: response carried no access_token"))
	}

	if err := g.store.Set(tok.AccessToken); err != nil {
		// The token is held in memory; only persistence failed.
		g.logger.Warn("persist session", "error", err)
	}

	user, err := g.CurrentUser(ctx)
	if err != nil || user == nil {
		g.clearIfCurrent(tok.AccessToken)
		if err == nil {
			err = errors.New("token rejected by verify")
		}
		return failure(MsgVerifyFailed, fmt.Errorf("client.Login: %w", err))
	}

	g.logger.Info("logged in", "username", user.Username, "user_type", user.UserType)
	return Outcome{Success: true, User: user, Token: tok.AccessToken}
}

// CurrentUser verifies the stored token with the auth service and returns
// the user it belongs to.
//
// With no token it returns nil, nil without any network call. A 401 or a
// valid:false answer clears the session and returns nil, nil. Any other
// failure is returned as an error and leaves the token in place.
//
// Concurrent calls for the same token share one verify round trip. The
// shared call is detached from every caller's context and bounded by the
// gateway timeout; cancelling ctx only abandons this caller's wait.
func (g *Gateway) CurrentUser(ctx context.Context) (*domain.User, error) {
	tok, ok := g.store.Token()
	if !ok {
		return nil, nil
	}

	ch := g.verifyGroup.DoChan(tok, func() (any, error) {
		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout())
		defer cancel()
		return g.verify(vctx, tok)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("client.CurrentUser: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("client.CurrentUser: %w", res.Err)
	}
	user, _ := res.Val.(*domain.User)
	if user == nil {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (g *Gateway) verify(ctx context.Context, tok string) (*domain.User, error) {
	var resp verifyResponse
	if err := g.exchange(ctx, "/verify", verifyRequest{Token: tok}, &resp); err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			g.clearIfCurrent(tok)
			g.logger.Info("session expired", "reason", "verify 401")
			return nil, nil
		}
		return nil, err
	}
	if !resp.Valid {
		g.clearIfCurrent(tok)
		g.logger.Info("session expired", "reason", "verify invalid")
		return nil, nil
	}
	return &domain.User{
		UserID:   resp.UserID,
		Username: resp.Username,
		UserType: resp.UserType,
	}, nil
}

// Logout drops the session and fires the invalidation handler. It cannot
// fail. The auth service is asked to revoke the token afterwards; that call
// is best-effort.
func (g *Gateway) Logout(ctx context.Context) {
	tok, ok := g.store.Token()
	g.invalidate(ReasonLogout)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	path := "/logout?" + url.Values{"token": {tok}}.Encode()
	if err := g.exchange(ctx, path, nil, nil); err != nil {
		g.logger.Debug("server-side logout", "error", err)
	}
}

// Register creates an account. It never touches the session: a new account
// is not a logged-in one.
func (g *Gateway) Register(ctx context.Context, c domain.Candidate) Outcome {
	var acct domain.Account
	if err := g.exchange(ctx, "/register", c.WithDefaults(), &acct); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			return failure(httpErr.Message, fmt.Errorf("client.Register: %w", err))
		}
		return failure(MsgRegisterFailed, fmt.Errorf("client.Register: %w", err))
	}
	return Outcome{Success: true, Account: &acct}
}
