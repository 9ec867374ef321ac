// Package auth authenticates admin requests with HS256 bearer tokens whose
// subject is the user ID issued by the external identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
)

var ErrUnauthenticated = errors.New("auth: unauthenticated")

type contextKey struct{}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the authenticated user, or ErrUnauthenticated.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKey{}).(string)
	if !ok || userID == "" {
		return "", ErrUnauthenticated
	}
	return userID, nil
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// IssueToken signs a token for userID; used by the CLI for local testing.
func (a *Authenticator) IssueToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Verify returns the subject of a valid token.
func (a *Authenticator) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrUnauthenticated
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token with 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || raw == header {
			unauthorized(w)
			return
		}

		userID, err := a.Verify(raw)
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected bearer token")
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthenticated"}`))
}
