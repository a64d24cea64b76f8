package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/montaro/algohub/internal/models"
)

const sessionCookie = "token"

const sessionTTL = 24 * time.Hour

// Claims defines the JWT claims structure carried by the session cookie.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const principalKey = contextKey("principal")

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID   int64
	Role string
}

// PrincipalFrom extracts the authenticated principal from a request context.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// TokenManager issues and validates session tokens.
type TokenManager struct {
	key           []byte
	secureCookies bool
}

// NewTokenManager creates a TokenManager signing with the given secret.
// secureCookies should be set in production so cookies are HTTPS-only.
func NewTokenManager(secret string, secureCookies bool) *TokenManager {
	return &TokenManager{key: []byte(secret), secureCookies: secureCookies}
}

// Generate creates a new session token for a user.
func (tm *TokenManager) Generate(user models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.key)
}

// Validate parses and validates a session token string.
func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SetSessionCookie attaches a fresh session cookie to the response.
func (tm *TokenManager) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		Secure:   tm.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// ClearSessionCookie overwrites the session cookie with an expired one.
func (tm *TokenManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   tm.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// RequireAuth is a middleware that rejects requests without a valid session
// and threads the Principal through the request context.
func (tm *TokenManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			unauthenticated(w)
			return
		}

		claims, err := tm.Validate(cookie.Value)
		if err != nil {
			unauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, Principal{ID: claims.UserID, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Login required."})
}
