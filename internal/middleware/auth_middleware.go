// internal/middleware/auth_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"flotaops-service/internal/permissions"
	"flotaops-service/internal/pkg/response"
	"flotaops-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	authService *auth.AuthService
}

func NewAuthMiddleware(authService *auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth validates the bearer token, checks the blacklist and the live
// session, and loads the identity and role into the request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set("identity_id", claims.IdentityID)
		c.Set("jti", claims.ID)
		c.Set("role", claims.Role)
		c.Set("device", claims.Device)

		c.Next()
	}
}

// RequireModule requires that the caller's role may perform the action on
// the module. MUST be used after Auth().
func (m *AuthMiddleware) RequireModule(module permissions.Module, action permissions.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			response.Error(c, http.StatusForbidden, "no role found - authentication required", nil)
			return
		}

		if !permissions.CheckPermission(role, module, action) {
			err := errors.New("role does not grant this action")
			response.Error(c, http.StatusForbidden, "insufficient permissions", err, map[string]interface{}{
				"module": module,
				"action": action,
				"role":   role,
			})
			return
		}

		c.Next()
	}
}

// RequireRole requires one of the listed roles. MUST be used after Auth().
func (m *AuthMiddleware) RequireRole(roles ...permissions.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			response.Error(c, http.StatusForbidden, "no role found - authentication required", nil)
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		err := errors.New("user does not have required role")
		response.Error(c, http.StatusForbidden, "insufficient permissions", err, map[string]interface{}{
			"required_roles": roles,
			"role":           role,
		})
	}
}

// AdminOnly returns middlewares for admin-only routes.
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(permissions.RoleAdmin),
	}
}

// WithModule returns middlewares for module-permission routes.
func (m *AuthMiddleware) WithModule(module permissions.Module, action permissions.Action) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireModule(module, action),
	}
}

// extractToken extracts the Bearer token from the Authorization header,
// falling back to the token query param for websocket upgrades.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}

// GetIdentityID gets the identity id from context.
func GetIdentityID(c *gin.Context) (int64, bool) {
	identityID, exists := c.Get("identity_id")
	if !exists {
		return 0, false
	}
	id, ok := identityID.(int64)
	return id, ok
}

// GetJTI gets the token id from context.
func GetJTI(c *gin.Context) (string, bool) {
	jti, exists := c.Get("jti")
	if !exists {
		return "", false
	}
	jtiStr, ok := jti.(string)
	return jtiStr, ok
}

// GetRole gets the caller's role from context.
func GetRole(c *gin.Context) (permissions.Role, bool) {
	role, exists := c.Get("role")
	if !exists {
		return "", false
	}
	r, ok := role.(permissions.Role)
	return r, ok
}
