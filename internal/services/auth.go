package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/session"
)

type AuthErrorKind int

const (
	AuthErrOther AuthErrorKind = iota
	AuthErrInvalidCredentials
	AuthErrAccessDenied
	AuthErrLocked
	AuthErrRateLimited
)

const defaultRetryAfter = 900 * time.Second

// AuthError classifies a failed login so the caller can choose between an
// inline message and a cooldown timer.
type AuthError struct {
	Kind       AuthErrorKind
	Message    string
	RetryAfter time.Duration
}

func (e *AuthError) Error() string {
	return e.Message
}

// Auth owns the login and logout transitions of the session state machine:
// Anonymous -> Authenticated on login, back to Anonymous on logout. There
// are no intermediate states and no token refresh.
type Auth struct {
	client *api.Client
	store  session.Store

	// failedAttempts is display-only; the server enforces the real lockout.
	failedAttempts int
}

func NewAuth(client *api.Client, store session.Store) *Auth {
	return &Auth{client: client, store: store}
}

func (a *Auth) FailedAttempts() int {
	return a.failedAttempts
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login warms the backend up, authenticates, and persists the session.
// The returned error is an *AuthError for every classified failure.
func (a *Auth) Login(ctx context.Context, email, password string) (session.Session, error) {
	a.client.WarmUp(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	resp, err := a.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": email, "password": password},
	})
	// A 401/403 on the login call itself trips the global invalidation
	// like any other request; no session existed, so the clear is a no-op
	// and the status still needs classifying below.
	if err != nil && !errors.Is(err, api.ErrSessionInvalidated) {
		return session.Session{}, fmt.Errorf("login request failed: %w", err)
	}

	if !resp.OK() {
		return session.Session{}, a.classify(resp)
	}

	var payload loginResponse
	if err := resp.Decode(&payload); err != nil {
		return session.Session{}, err
	}

	claims, err := session.DecodeClaims(payload.Token)
	if err != nil {
		return session.Session{}, fmt.Errorf("server returned an undecodable token")
	}

	sess := session.Session{
		Token:  payload.Token,
		UserID: claims.UserID,
		Role:   claims.Role,
		Name:   claims.Name,
	}
	if err := a.store.Set(sess); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}

	a.failedAttempts = 0
	slog.Info("logged in", "userId", sess.UserID, "role", sess.Role)
	return sess, nil
}

func (a *Auth) classify(resp *api.Response) *AuthError {
	switch resp.StatusCode {
	case http.StatusLocked:
		return &AuthError{
			Kind:       AuthErrLocked,
			Message:    resp.ErrorMessage("account locked"),
			RetryAfter: time.Duration(resp.RetryAfterSeconds(int(defaultRetryAfter.Seconds()))) * time.Second,
		}
	case http.StatusTooManyRequests:
		return &AuthError{
			Kind:       AuthErrRateLimited,
			Message:    resp.ErrorMessage("too many attempts"),
			RetryAfter: time.Duration(resp.RetryAfterSeconds(int(defaultRetryAfter.Seconds()))) * time.Second,
		}
	case http.StatusUnauthorized:
		a.failedAttempts++
		return &AuthError{Kind: AuthErrInvalidCredentials, Message: resp.ErrorMessage("invalid email or password")}
	case http.StatusForbidden:
		return &AuthError{Kind: AuthErrAccessDenied, Message: resp.ErrorMessage("access denied")}
	default:
		return &AuthError{Kind: AuthErrOther, Message: resp.ErrorMessage("login failed")}
	}
}

// Logout tells the server to invalidate the token, then clears local state
// no matter what the server said. The deferred clear is the guarantee:
// even a panic in the transport path cannot leave credentials behind.
func (a *Auth) Logout(ctx context.Context) error {
	defer func() {
		if err := a.store.Clear(); err != nil {
			slog.Warn("session clear failed", "err", err)
		}
	}()

	resp, err := a.client.Do(ctx, api.Request{Method: http.MethodPost, Path: "/auth/logout"})
	if err != nil {
		slog.Debug("server-side logout failed, clearing locally", "err", err)
	} else if !resp.OK() {
		slog.Debug("server-side logout rejected, clearing locally", "status", resp.StatusCode)
	}
	return nil
}
