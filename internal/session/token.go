package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Expired reports whether token is a JWT whose exp claim has passed.
// The upstream issues and verifies tokens; this is an unverified peek at
// the expiry so an obviously dead session can be dropped without a round
// trip. Opaque (non-JWT) tokens and JWTs without exp report false.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
