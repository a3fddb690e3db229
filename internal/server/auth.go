package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aretw0/scribe/internal/metrics"
)

type contextKey string

const (
	claimsContextKey    contextKey = "claims"
	requestIDContextKey contextKey = "request_id"
)

// Issuer is the iss claim of tokens minted by IssueToken.
const Issuer = "scribe"

// Claims holds JWT token claims. UserID becomes the owner of files written
// and the owner checked on signed reads.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth validates HS256 bearer tokens.
type Auth struct {
	secret []byte
}

// NewAuth creates a new Auth with the shared secret.
func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// IssueToken mints a token for userID. A zero ttl means no expiry.
func (a *Auth) IssueToken(userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			Subject:  fmt.Sprintf("%d", userID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Middleware returns HTTP middleware that validates JWT tokens.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			metrics.RecordAuthAttempt(false)
			sendFailure(w, http.StatusUnauthorized, "missing authentication token")
			return
		}

		claims, err := a.validateToken(tokenStr)
		if err != nil {
			metrics.RecordAuthAttempt(false)
			sendFailure(w, http.StatusUnauthorized, "invalid token: "+err.Error())
			return
		}
		metrics.RecordAuthAttempt(true)

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) validateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// extractToken reads the bearer token from the Authorization header, or from
// the token query parameter for websocket clients that cannot set headers.
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// GetClaims extracts claims from the request context.
func GetClaims(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// OwnerFromContext returns the authenticated user id, or nil on an open server.
func OwnerFromContext(ctx context.Context) *int {
	claims := GetClaims(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}
