package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/session"
)

// fastOptions keeps the retry and warm-up waits out of test wall time.
var fastOptions = api.Options{
	Timeout:       5 * time.Second,
	HealthTimeout: time.Second,
	RetryWait:     time.Millisecond,
	WarmUpWait:    time.Millisecond,
}

func signedToken(t *testing.T) string {
	t.Helper()
	claims := session.Claims{
		UserID: "emp-1",
		Role:   session.RoleEmployee,
		Name:   "Asha Karki",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// authTestServer serves /health plus a login handler so WarmUp never waits.
func authTestServer(t *testing.T, login http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/auth/login", login)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginPersistsDecodedSession(t *testing.T) {
	token := signedToken(t)
	srv := authTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if body["email"] != "asha@example.com" {
			t.Errorf("email not normalized, got %q", body["email"])
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	})

	store := session.NewMemoryStore()
	auth := NewAuth(api.New(srv.URL, store, fastOptions), store)

	sess, err := auth.Login(context.Background(), "  Asha@Example.com ", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.UserID != "emp-1" || sess.Role != session.RoleEmployee || sess.Name != "Asha Karki" {
		t.Fatalf("session not built from token claims: %+v", sess)
	}

	stored, ok := store.Get()
	if !ok || stored.Token != token {
		t.Fatal("session not persisted")
	}
}

func TestLoginClassifiesLockout(t *testing.T) {
	srv := authTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusLocked)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "account locked",
			"retryAfter": 120,
		})
	})

	store := session.NewMemoryStore()
	auth := NewAuth(api.New(srv.URL, store, fastOptions), store)

	_, err := auth.Login(context.Background(), "asha@example.com", "pw")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Kind != AuthErrLocked {
		t.Fatalf("expected AuthErrLocked, got %v", authErr.Kind)
	}
	if authErr.RetryAfter != 120*time.Second {
		t.Fatalf("expected retryAfter 120s, got %v", authErr.RetryAfter)
	}
}

func TestLoginRateLimitUsesDefaultCooldown(t *testing.T) {
	srv := authTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "slow down"})
	})

	store := session.NewMemoryStore()
	auth := NewAuth(api.New(srv.URL, store, fastOptions), store)

	_, err := auth.Login(context.Background(), "asha@example.com", "pw")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Kind != AuthErrRateLimited {
		t.Fatalf("expected AuthErrRateLimited, got %v", authErr.Kind)
	}
	if authErr.RetryAfter != defaultRetryAfter {
		t.Fatalf("expected default cooldown %v, got %v", defaultRetryAfter, authErr.RetryAfter)
	}
}

func TestLoginCountsInvalidCredentialAttempts(t *testing.T) {
	srv := authTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
	})

	store := session.NewMemoryStore()
	auth := NewAuth(api.New(srv.URL, store, fastOptions), store)

	for i := 0; i < 3; i++ {
		_, err := auth.Login(context.Background(), "asha@example.com", "wrong")
		var authErr *AuthError
		if !errors.As(err, &authErr) || authErr.Kind != AuthErrInvalidCredentials {
			t.Fatalf("attempt %d: expected AuthErrInvalidCredentials, got %v", i, err)
		}
	}
	if auth.FailedAttempts() != 3 {
		t.Fatalf("expected 3 failed attempts, got %d", auth.FailedAttempts())
	}
}

func TestLoginRejectsUndecodableToken(t *testing.T) {
	srv := authTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "not-a-jwt"})
	})

	store := session.NewMemoryStore()
	auth := NewAuth(api.New(srv.URL, store, fastOptions), store)

	if _, err := auth.Login(context.Background(), "asha@example.com", "pw"); err == nil {
		t.Fatal("expected error for undecodable token")
	}
	if _, ok := store.Get(); ok {
		t.Fatal("session must not be stored on a bad token")
	}
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := session.NewMemoryStore()
	if err := store.Set(session.Session{Token: "tok", UserID: "emp-1"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	auth := NewAuth(api.New(srv.URL, store, fastOptions), store)

	if err := auth.Logout(context.Background()); err != nil {
		t.Fatalf("logout must not surface server errors: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatal("local session must be cleared regardless of the server")
	}
}
