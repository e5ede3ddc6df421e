package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the session token. The
// Authorization: Bearer header is accepted as an alternative for
// non-browser clients.
const SessionCookieName = "session"

// Authenticator validates session tokens: the JWT signature plus the
// session store, so revoked tokens fail even before expiry.
type Authenticator struct {
	jwtSecret string
	sessions  domain.SessionStore
}

func NewAuthenticator(jwtSecret string, sessions domain.SessionStore) *Authenticator {
	return &Authenticator{jwtSecret: jwtSecret, sessions: sessions}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// verify returns (userID, tokenID) for a valid, unrevoked token.
func (a *Authenticator) verify(ctx context.Context, token string) (string, string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", "", domain.ErrUnauthenticated
	}

	userID, err := a.sessions.UserID(ctx, claims.ID)
	if err != nil || userID != claims.Subject {
		return "", "", domain.ErrUnauthenticated
	}
	return claims.Subject, claims.ID, nil
}

// Optional populates the request context with the caller's identity
// when a valid token is present; it never rejects.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			if userID, tokenID, err := a.verify(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
				ctx = context.WithValue(ctx, TokenIDCtxKey, tokenID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects unauthenticated requests with a 401 JSON body.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			unauthenticated(w)
			return
		}
		userID, tokenID, err := a.verify(r.Context(), token)
		if err != nil {
			unauthenticated(w)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, TokenIDCtxKey, tokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "You must be logged in to perform this action"})
}

// UserIDFromContext extracts the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// TokenIDFromContext extracts the session token id, if any.
func TokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDCtxKey).(string)
	return tokenID, ok && tokenID != ""
}
