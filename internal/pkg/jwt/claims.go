// internal/pkg/jwt/claims.go
package jwt

import (
	"flotaops-service/internal/permissions"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims. Every user carries exactly one role.
type Claims struct {
	IdentityID     int64            `json:"identity_id"`
	Role           permissions.Role `json:"role,omitempty"`
	Device         string           `json:"device,omitempty"`
	IsTemp         bool             `json:"is_temp"`
	SessionPurpose string           `json:"session_purpose"` // access, refresh, password_reset
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token belongs to an administrator.
func (c *Claims) IsAdmin() bool {
	return c.Role == permissions.RoleAdmin
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *Claims) VerifyAudience(audience string, required bool) bool {
	if len(c.Audience) == 0 {
		return !required
	}
	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}
	return false
}
