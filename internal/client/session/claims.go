package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/x3alone/01blog/internal/models"
)

// Claims is the decoded payload of the bearer token. The client never
// verifies the signature; the backend is authoritative for identity and role,
// and the decoded values are used only for display and UI gating.
type Claims struct {
	// UserID is the numeric account id carried in the "id" claim.
	UserID int64 `json:"id"`
	// Role is the privilege level carried in the "role" claim.
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the token subject, which the backend sets to the login name.
func (c Claims) Username() string {
	return c.Subject
}

// DecodeClaims extracts the claims from a three-segment compact token without
// verifying it. Malformed or empty tokens yield ok=false; decode failures are
// never propagated as errors or panics.
func DecodeClaims(token string) (Claims, bool) {
	if token == "" {
		return Claims{}, false
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, false
	}
	return claims, true
}
