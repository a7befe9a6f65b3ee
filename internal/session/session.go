package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrWrongRole    = errors.New("role not permitted")
)

// Session is the client's view of who is logged in. It is written whole on
// login and cleared whole on logout; there is no partial mutation.
type Session struct {
	Token  string
	UserID string
	Role   string
	Name   string
}

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts the token's claims without verifying the signature.
// The client holds no signing secret; the server is the authority on token
// validity and answers 401 when a tampered token is presented.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the exp claim is at or before now. A token with
// no exp claim is treated as expired rather than immortal.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.Time.After(now)
}
