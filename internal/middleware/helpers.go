// internal/middleware/helpers.go
package middleware

import (
	"flotaops-service/internal/permissions"

	"github.com/gin-gonic/gin"
)

// MustGetIdentityID gets the identity id from context or panics. Only for
// handlers mounted behind Auth().
func MustGetIdentityID(c *gin.Context) int64 {
	identityID, exists := GetIdentityID(c)
	if !exists {
		panic("identity_id not found in context")
	}
	return identityID
}

// MustGetRole gets the caller's role from context or panics.
func MustGetRole(c *gin.Context) permissions.Role {
	role, exists := GetRole(c)
	if !exists {
		panic("role not found in context")
	}
	return role
}

// IsAuthenticated checks if the request carries a validated identity.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("identity_id")
	return exists
}

// IsAdmin checks if the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	role, ok := GetRole(c)
	return ok && role == permissions.RoleAdmin
}
