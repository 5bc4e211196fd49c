// internal/domain/auth/dto.go
package auth

import (
	"time"

	"flotaops-service/internal/permissions"
)

// LoginRequest for user login
type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Device    string `json:"device"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse successful login response
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo minimal user information returned with a login
type UserInfo struct {
	IdentityID     int64               `json:"identity_id"`
	Email          string              `json:"email"`
	Nombre         string              `json:"nombre"`
	Role           permissions.Role    `json:"role"`
	RoleName       string              `json:"role_name"`
	VisibleModules []permissions.Module `json:"visible_modules"`
}

// UserAccount is the identity-plus-profile row shown in user management.
type UserAccount struct {
	ID           int64            `json:"id"`
	Email        string           `json:"email"`
	Status       string           `json:"status"`
	LastLogin    *time.Time       `json:"last_login,omitempty"`
	Nombre       string           `json:"nombre"`
	Role         permissions.Role `json:"role"`
	Departamento string           `json:"departamento"`
	Cargo        string           `json:"cargo"`
	Telefono     string           `json:"telefono"`
	AvatarURL    string           `json:"avatar_url"`
	CreatedAt    time.Time        `json:"created_at"`
}

// UpdateRoleRequest for changing a user's role (admin only)
type UpdateRoleRequest struct {
	Role permissions.Role `json:"role" binding:"required"`
}

// CreateUserRequest for creating accounts (admin only)
type CreateUserRequest struct {
	Email        string           `json:"email" binding:"required,email"`
	Password     string           `json:"password" binding:"required,min=8"`
	Nombre       string           `json:"nombre" binding:"required"`
	Role         permissions.Role `json:"role" binding:"required"`
	Departamento string           `json:"departamento"`
	Cargo        string           `json:"cargo"`
	Telefono     string           `json:"telefono"`
}

// ChangePasswordRequest for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ForgotPasswordRequest for requesting a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest for completing a password reset
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest for profile updates
type UpdateProfileRequest struct {
	Nombre       string `json:"nombre"`
	Departamento string `json:"departamento"`
	Cargo        string `json:"cargo"`
	Telefono     string `json:"telefono"`
	AvatarURL    string `json:"avatar_url"`
}
