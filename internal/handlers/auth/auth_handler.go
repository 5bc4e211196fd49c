// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/auth"
	"flotaops-service/internal/middleware"
	"flotaops-service/internal/pkg/jwt"
	"flotaops-service/internal/pkg/response"
	authService "flotaops-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authService.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(svc *authService.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: svc,
		logger:      logger,
	}
}

// ========== Login / Logout ==========

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", req.IPAddress),
			zap.Error(err))
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// Logout invalidates the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// LogoutAll invalidates every session of the caller
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	if err := h.authService.LogoutAll(c.Request.Context(), identityID); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "all sessions closed", nil)
}

// ========== Passwords ==========

// ChangePassword changes the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	identityID := middleware.MustGetIdentityID(c)
	if err := h.authService.ChangePassword(c.Request.Context(), identityID, &req); err != nil {
		response.FromError(c, "failed to change password", err)
		return
	}

	response.Success(c, http.StatusOK, "password changed", nil)
}

// ForgotPassword requests a password reset email (public endpoint)
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req); err != nil {
		response.FromError(c, "failed to process reset request", err)
		return
	}

	// Same response whether the email exists or not.
	response.Success(c, http.StatusOK, "if the account exists, a reset email was sent", nil)
}

// ResetPassword completes a password reset (public endpoint)
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		response.FromError(c, "failed to reset password", err)
		return
	}

	response.Success(c, http.StatusOK, "password reset", nil)
}

// ========== Profile ==========

// GetProfile returns the caller's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	profile, err := h.authService.GetProfile(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, "failed to load profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", profile)
}

// UpdateProfile updates the caller's display data
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	identityID := middleware.MustGetIdentityID(c)
	profile, err := h.authService.UpdateProfile(c.Request.Context(), identityID, &req)
	if err != nil {
		response.FromError(c, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", profile)
}

// ========== User management (admin) ==========

// CreateUser provisions a new account
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req auth.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	account, err := h.authService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("user creation failed", zap.String("email", req.Email), zap.Error(err))
		response.FromError(c, "failed to create user", err)
		return
	}

	response.Success(c, http.StatusCreated, "user created", account)
}

// ListUsers lists every account with its profile
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list users", err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", users)
}

// UpdateUserRole changes one user's role
func (h *AuthHandler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var req auth.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.UpdateUserRole(c.Request.Context(), id, req.Role); err != nil {
		response.FromError(c, "failed to update role", err)
		return
	}

	response.Success(c, http.StatusOK, "role updated", nil)
}

// DeactivateUser soft deletes an account
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if id == middleware.MustGetIdentityID(c) {
		response.Error(c, http.StatusConflict, "cannot deactivate your own account", nil)
		return
	}

	if err := h.authService.DeactivateUser(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to deactivate user", err)
		return
	}

	response.Success(c, http.StatusOK, "user deactivated", nil)
}

// claimsFromContext rebuilds the minimal claims the logout path needs from
// what Auth() stored.
func claimsFromContext(c *gin.Context) *jwt.Claims {
	identityID, ok := middleware.GetIdentityID(c)
	if !ok {
		return nil
	}
	jti, ok := middleware.GetJTI(c)
	if !ok {
		return nil
	}

	claims := &jwt.Claims{IdentityID: identityID}
	claims.ID = jti
	if role, ok := middleware.GetRole(c); ok {
		claims.Role = role
	}
	return claims
}
