// internal/domain/auth/entity.go
package auth

import (
	"database/sql"
	"time"

	"flotaops-service/internal/permissions"
)

// Identity is the core user account. Only local credential auth exists; the
// password hash lives on the identity row.
type Identity struct {
	ID                  int64          `json:"id" db:"id"`
	Email               string         `json:"email" db:"email"`
	PasswordHash        string         `json:"-" db:"password_hash"`
	Status              string         `json:"status" db:"status"` // active, inactive, suspended
	LastLogin           sql.NullTime   `json:"last_login" db:"last_login"`
	FailedLoginAttempts int            `json:"-" db:"failed_login_attempts"`
	LockedUntil         sql.NullTime   `json:"-" db:"locked_until"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt           sql.NullTime   `json:"-" db:"deleted_at"`
}

// UserProfile holds the display data attached to an identity. Role is one of
// the eleven fixed role identifiers.
type UserProfile struct {
	ID           int64            `json:"id" db:"id"`
	IdentityID   int64            `json:"identity_id" db:"identity_id"`
	Nombre       string           `json:"nombre" db:"nombre"`
	Role         permissions.Role `json:"role" db:"role"`
	Departamento string           `json:"departamento" db:"departamento"`
	Cargo        string           `json:"cargo" db:"cargo"`
	Telefono     string           `json:"telefono" db:"telefono"`
	AvatarURL    string           `json:"avatar_url" db:"avatar_url"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// VerificationToken backs the password-reset flow.
type VerificationToken struct {
	ID         int64        `json:"id" db:"id"`
	IdentityID int64        `json:"identity_id" db:"identity_id"`
	TokenType  string       `json:"token_type" db:"token_type"` // password_reset
	Token      string       `json:"token" db:"token"`
	ExpiresAt  time.Time    `json:"expires_at" db:"expires_at"`
	UsedAt     sql.NullTime `json:"used_at" db:"used_at"`
	Attempts   int          `json:"attempts" db:"attempts"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
