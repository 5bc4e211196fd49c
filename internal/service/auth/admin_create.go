// internal/service/auth/admin_create.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flotaops-service/internal/domain/auth"
	"flotaops-service/internal/permissions"
	xerrors "flotaops-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminExists guarantees there is at least one admin account at
// startup. When the configured admin email is missing, the account is
// created; with an empty configured password a random one is generated and
// logged once.
func (s *AuthService) EnsureAdminExists(ctx context.Context, adminEmail, adminPassword string) error {
	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	if adminEmail == "" {
		return fmt.Errorf("admin email not configured")
	}

	admins, err := s.authRepo.CountByRole(ctx, permissions.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	identity, err := s.authRepo.FindIdentityByEmail(ctx, adminEmail)
	if err == nil {
		// Account exists but without the admin role; promote it.
		if err := s.authRepo.UpdateUserRole(ctx, identity.ID, permissions.RoleAdmin); err != nil {
			return fmt.Errorf("failed to promote admin account: %w", err)
		}
		s.logger.Info("existing account promoted to admin", zap.String("email", adminEmail))
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	generated := false
	if adminPassword == "" {
		adminPassword, err = generateTempPassword()
		if err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	identity = &auth.Identity{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Status:       "active",
	}
	profile := &auth.UserProfile{
		Nombre: "Administrador",
		Role:   permissions.RoleAdmin,
		Cargo:  "Administrador del sistema",
	}

	if err := s.authRepo.CreateIdentityWithProfile(ctx, identity, profile); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if generated {
		// Logged once so the operator can capture it on first boot.
		s.logger.Warn("admin account created with generated password",
			zap.String("email", adminEmail),
			zap.String("password", adminPassword))
	} else {
		s.logger.Info("admin account created", zap.String("email", adminEmail))
	}
	return nil
}
