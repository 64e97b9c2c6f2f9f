// internal/domain/session/token.go
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The terminal never validates token signatures; that is the back office's
// job. It only inspects the expiry claim so a stale persisted session is
// treated as logged out instead of failing on the first authenticated call.

// tokenExpired reports whether token carries an exp claim in the past.
// Tokens that are empty, opaque, or unparseable are not treated as expired;
// cookie-session deployments hand out no token at all.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Before(now)
}
