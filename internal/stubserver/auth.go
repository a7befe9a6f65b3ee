package stubserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhidhakal/hready/internal/session"
)

func withClaims(ctx context.Context, claims *session.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

func claimsFrom(r *http.Request) *session.Claims {
	claims, _ := r.Context().Value(ctxKeyClaims).(*session.Claims)
	if claims == nil {
		return &session.Claims{}
	}
	return claims
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if retryAfter, limited := s.rateLimited(email); limited {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"message":    "too many login attempts",
			"retryAfter": retryAfter,
		})
		return
	}

	if until, ok := s.lockedUntil[email]; ok {
		if remaining := time.Until(until); remaining > 0 {
			writeJSON(w, http.StatusLocked, map[string]any{
				"message":    "account locked, try again later",
				"retryAfter": int(remaining.Seconds()),
			})
			return
		}
		delete(s.lockedUntil, email)
		s.loginFails[email] = 0
	}

	acct, ok := s.accounts[email]
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		s.loginFails[email]++
		if s.loginFails[email] >= maxLoginFails {
			s.lockedUntil[email] = time.Now().Add(lockoutDuration)
			writeJSON(w, http.StatusLocked, map[string]any{
				"message":    "account locked after repeated failures",
				"retryAfter": int(lockoutDuration.Seconds()),
			})
			return
		}
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issueToken(acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	s.loginFails[email] = 0
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// rateLimited records the attempt and reports whether the email exceeded
// the per-window budget. Caller holds s.mu.
func (s *Server) rateLimited(email string) (retryAfterSeconds int, limited bool) {
	now := time.Now()
	recent := s.loginAttempts[email][:0]
	for _, at := range s.loginAttempts[email] {
		if now.Sub(at) < rateLimitWindow {
			recent = append(recent, at)
		}
	}
	if len(recent) >= rateLimitAttempts {
		s.loginAttempts[email] = recent
		wait := rateLimitWindow - now.Sub(recent[0])
		return int(wait.Seconds()) + 1, true
	}
	s.loginAttempts[email] = append(recent, now)
	return 0, false
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	// Tokens are stateless here; acknowledging is enough for the client's
	// best-effort invalidation call.
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
