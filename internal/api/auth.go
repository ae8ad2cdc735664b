package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/momentumhq/momentum/id"
)

type contextKey string

const userIDCtxKey contextKey = "user_id"

// Auth issues and validates bearer tokens for API requests.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

// NewAuth creates a token authority signing with HMAC-SHA256.
func NewAuth(secret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{secret: []byte(secret), ttl: ttl}
}

// IssueToken mints a token for the user. The subject claim carries the
// account ID.
func (a *Auth) IssueToken(userID id.UserID) (string, time.Time, error) {
	now := time.Now().UTC()
	expiry := now.Add(a.ttl)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
		Issuer:    "momentum",
	})

	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("api: sign token: %w", err)
	}
	return signed, expiry, nil
}

// parseToken validates a token string and returns the account ID it names.
func (a *Auth) parseToken(raw string) (id.UserID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("api: unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return id.Nil, err
	}
	return id.ParseUserID(claims.Subject)
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated account ID in the request context.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		userID, err := a.parseToken(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestUserID extracts the authenticated account ID from the context.
func requestUserID(r *http.Request) id.UserID {
	return r.Context().Value(userIDCtxKey).(id.UserID)
}
