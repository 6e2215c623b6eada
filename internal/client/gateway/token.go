package gateway

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether the bearer token carries an exp claim in
// the past. The signature is NOT verified here; the token is opaque and
// the server remains the authority. Tokens that do not parse as JWTs or
// carry no exp claim are passed through and left for the server to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
