// internal/service/auth/auth.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/auth"
	"flotaops-service/internal/permissions"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/pkg/jwt"
	"flotaops-service/internal/pkg/session"
	"flotaops-service/internal/repository/postgres"
	"flotaops-service/internal/service/email"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLogins = 5
	lockDuration    = 15 * time.Minute
)

type AuthService struct {
	authRepo       *postgres.AuthRepository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	rateLimiter    *session.RateLimiter
	emailHelper    *EmailHelper
	logger         *zap.Logger
}

func NewAuthService(
	authRepo *postgres.AuthRepository,
	jwtManager *jwt.Manager,
	sessionManager *session.Manager,
	rateLimiter *session.RateLimiter,
	emailSender *email.EmailSender,
	baseURL string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		authRepo:       authRepo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		emailHelper:    NewEmailHelper(emailSender, logger, baseURL),
		logger:         logger,
	}
}

// ========== Login / Logout ==========

// Login authenticates a user with email and password. Failed attempts are
// rate limited per ip+email and lock the account after five in a row.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if s.rateLimiter != nil {
		allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, reqEmail)
		if err != nil {
			s.logger.Warn("login rate limit check failed", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("login rate limited",
				zap.String("email", reqEmail), zap.String("ip", req.IPAddress))
			return nil, xerrors.ErrRateLimited
		} else if remaining <= 1 {
			s.logger.Info("login attempts nearly exhausted",
				zap.String("email", reqEmail), zap.Int64("remaining", remaining))
		}
	}

	identity, err := s.authRepo.FindIdentityByEmail(ctx, reqEmail)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	if identity.LockedUntil.Valid && identity.LockedUntil.Time.After(time.Now()) {
		return nil, fmt.Errorf("account locked until %s: %w",
			identity.LockedUntil.Time.Format(time.RFC3339), xerrors.ErrForbidden)
	}
	if identity.Status != "active" {
		return nil, fmt.Errorf("account is %s: %w", identity.Status, xerrors.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		if err := s.authRepo.IncrementFailedLoginAttempts(ctx, identity.ID, lockDuration); err != nil {
			s.logger.Error("failed to record failed login", zap.Int64("identity_id", identity.ID), zap.Error(err))
		}
		return nil, xerrors.ErrUnauthorized
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, reqEmail); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	return s.loginWithIdentity(ctx, identity, req.Device, req.IPAddress, req.UserAgent)
}

func (s *AuthService) loginWithIdentity(ctx context.Context, identity *auth.Identity, device, ip, userAgent string) (*auth.LoginResponse, error) {
	profile, err := s.authRepo.GetUserProfile(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	token, jti, err := s.jwtManager.Generator.GenerateAccessToken(identity.ID, profile.Role, device)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtManager.Generator.Ttl)
	sess := &session.SessionData{
		JTI:            jti,
		IdentityID:     identity.ID,
		Email:          identity.Email,
		Role:           profile.Role,
		Device:         device,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}
	if err := s.sessionManager.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.authRepo.UpdateIdentityLastLogin(ctx, identity.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.Int64("identity_id", identity.ID), zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.Int64("identity_id", identity.ID),
		zap.String("role", string(profile.Role)))

	return &auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtManager.Generator.Ttl.Seconds()),
		ExpiresAt:   expiresAt,
		User: auth.UserInfo{
			IdentityID:     identity.ID,
			Email:          identity.Email,
			Nombre:         profile.Nombre,
			Role:           profile.Role,
			RoleName:       permissions.RoleName(profile.Role),
			VisibleModules: permissions.GetVisibleModules(profile.Role),
		},
	}, nil
}

// Logout invalidates the session behind one token and blacklists its jti.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if err := s.sessionManager.InvalidateSession(ctx, claims.IdentityID, claims.ID); err != nil {
		s.logger.Warn("failed to invalidate session", zap.Error(err))
	}
	// Without the exact expiry, blacklist for the full access TTL.
	ttl := s.jwtManager.Generator.Ttl
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl > 0 {
		if err := s.sessionManager.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
	}
	s.logger.Info("user logged out", zap.Int64("identity_id", claims.IdentityID))
	return nil
}

// LogoutAll drops every active session for the identity.
func (s *AuthService) LogoutAll(ctx context.Context, identityID int64) error {
	sessions, err := s.sessionManager.GetUserActiveSessions(ctx, identityID)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	for _, sess := range sessions {
		ttl := time.Until(sess.ExpiresAt)
		if ttl > 0 {
			if err := s.sessionManager.BlacklistToken(ctx, sess.JTI, ttl); err != nil {
				s.logger.Warn("failed to blacklist token", zap.String("jti", sess.JTI), zap.Error(err))
			}
		}
	}
	if err := s.sessionManager.InvalidateAllUserSessions(ctx, identityID); err != nil {
		return fmt.Errorf("failed to invalidate sessions: %w", err)
	}
	s.logger.Info("all sessions invalidated", zap.Int64("identity_id", identityID))
	return nil
}

// ValidateToken verifies the signature, the blacklist and the live session
// behind an access token.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	blacklisted, err := s.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessionManager.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}
	return claims, nil
}

// ========== Passwords ==========

// ChangePassword verifies the current password before setting the new one,
// then drops every other session.
func (s *AuthService) ChangePassword(ctx context.Context, identityID int64, req *auth.ChangePasswordRequest) error {
	identity, err := s.authRepo.FindIdentityByID(ctx, identityID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return xerrors.ErrUnauthorized
	}
	if req.CurrentPassword == req.NewPassword {
		return fmt.Errorf("new password must differ from the current one: %w", xerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.authRepo.UpdatePassword(ctx, identityID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.LogoutAll(ctx, identityID); err != nil {
		s.logger.Warn("failed to drop sessions after password change", zap.Error(err))
	}

	s.logger.Info("password changed", zap.Int64("identity_id", identityID))
	return nil
}

// ForgotPassword issues a reset token and emails it. It never reveals
// whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, req *auth.ForgotPasswordRequest) error {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.CheckPasswordResetAttempt(ctx, reqEmail)
		if err != nil {
			s.logger.Warn("password reset rate limit check failed", zap.Error(err))
		} else if !allowed {
			return xerrors.ErrRateLimited
		}
	}

	identity, err := s.authRepo.FindIdentityByEmail(ctx, reqEmail)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find identity: %w", err)
	}

	token, _, err := s.jwtManager.Generator.GeneratePasswordResetToken(identity.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	vt := &auth.VerificationToken{
		IdentityID: identity.ID,
		TokenType:  "password_reset",
		Token:      token,
		ExpiresAt:  time.Now().Add(30 * time.Minute),
	}
	if err := s.authRepo.CreateVerificationToken(ctx, vt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	profile, err := s.authRepo.GetUserProfile(ctx, identity.ID)
	nombre := ""
	if err == nil {
		nombre = profile.Nombre
	}
	s.emailHelper.SendPasswordResetEmail(ctx, identity.Email, nombre, token)

	s.logger.Info("password reset requested", zap.Int64("identity_id", identity.ID))
	return nil
}

// ResetPassword completes the reset flow with a token from ForgotPassword.
func (s *AuthService) ResetPassword(ctx context.Context, req *auth.ResetPasswordRequest) error {
	claims, err := s.jwtManager.Verifier.VerifyPasswordResetToken(req.Token)
	if err != nil {
		return xerrors.ErrUnauthorized
	}

	vt, err := s.authRepo.FindVerificationToken(ctx, "password_reset", req.Token)
	if err != nil {
		return xerrors.ErrUnauthorized
	}
	if vt.IdentityID != claims.IdentityID {
		if err := s.authRepo.IncrementTokenAttempts(ctx, vt.ID); err != nil {
			s.logger.Warn("failed to bump token attempts", zap.Error(err))
		}
		return xerrors.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.authRepo.UpdatePassword(ctx, claims.IdentityID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.authRepo.MarkTokenAsUsed(ctx, vt.ID); err != nil {
		s.logger.Warn("failed to mark token used", zap.Error(err))
	}

	if err := s.LogoutAll(ctx, claims.IdentityID); err != nil {
		s.logger.Warn("failed to drop sessions after password reset", zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.Int64("identity_id", claims.IdentityID))
	return nil
}

// ========== Profile ==========

// GetProfile returns the profile attached to an identity.
func (s *AuthService) GetProfile(ctx context.Context, identityID int64) (*auth.UserProfile, error) {
	return s.authRepo.GetUserProfile(ctx, identityID)
}

// UpdateProfile updates the caller's own display data. Role is untouchable
// here; only UpdateUserRole changes it.
func (s *AuthService) UpdateProfile(ctx context.Context, identityID int64, req *auth.UpdateProfileRequest) (*auth.UserProfile, error) {
	profile, err := s.authRepo.GetUserProfile(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if req.Nombre != "" {
		profile.Nombre = req.Nombre
	}
	if req.Departamento != "" {
		profile.Departamento = req.Departamento
	}
	if req.Cargo != "" {
		profile.Cargo = req.Cargo
	}
	if req.Telefono != "" {
		profile.Telefono = req.Telefono
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}

	if err := s.authRepo.UpdateUserProfile(ctx, identityID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.Int64("identity_id", identityID))
	return profile, nil
}

// ========== User management (admin) ==========

// CreateUser provisions an account with a role. The caller supplies the
// initial password; the user is emailed their credentials.
func (s *AuthService) CreateUser(ctx context.Context, req *auth.CreateUserRequest) (*auth.UserAccount, error) {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if !permissions.IsValidRole(req.Role) {
		return nil, fmt.Errorf("invalid role %q: %w", req.Role, xerrors.ErrInvalidInput)
	}

	exists, err := s.authRepo.ExistsByEmail(ctx, reqEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &auth.Identity{
		Email:        reqEmail,
		PasswordHash: string(hash),
		Status:       "active",
	}
	profile := &auth.UserProfile{
		Nombre:       strings.TrimSpace(req.Nombre),
		Role:         req.Role,
		Departamento: req.Departamento,
		Cargo:        req.Cargo,
		Telefono:     req.Telefono,
	}

	if err := s.authRepo.CreateIdentityWithProfile(ctx, identity, profile); err != nil {
		s.logger.Error("failed to create user", zap.String("email", reqEmail), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.emailHelper.SendAccountCreatedEmail(ctx, reqEmail, profile.Nombre, req.Password, req.Role)

	s.logger.Info("user created",
		zap.Int64("identity_id", identity.ID),
		zap.String("role", string(req.Role)))

	return &auth.UserAccount{
		ID:           identity.ID,
		Email:        identity.Email,
		Status:       identity.Status,
		Nombre:       profile.Nombre,
		Role:         profile.Role,
		Departamento: profile.Departamento,
		Cargo:        profile.Cargo,
		Telefono:     profile.Telefono,
		CreatedAt:    identity.CreatedAt,
	}, nil
}

// ListUsers returns every account with its profile.
func (s *AuthService) ListUsers(ctx context.Context) ([]auth.UserAccount, error) {
	return s.authRepo.ListUsers(ctx)
}

// UpdateUserRole changes one user's role and drops their sessions so stale
// role claims stop circulating.
func (s *AuthService) UpdateUserRole(ctx context.Context, identityID int64, role permissions.Role) error {
	if !permissions.IsValidRole(role) {
		return fmt.Errorf("invalid role %q: %w", role, xerrors.ErrInvalidInput)
	}

	profile, err := s.authRepo.GetUserProfile(ctx, identityID)
	if err != nil {
		return err
	}
	if profile.Role == permissions.RoleAdmin && role != permissions.RoleAdmin {
		admins, err := s.authRepo.CountByRole(ctx, permissions.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return fmt.Errorf("cannot demote the last admin: %w", xerrors.ErrConflict)
		}
	}

	if err := s.authRepo.UpdateUserRole(ctx, identityID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if err := s.LogoutAll(ctx, identityID); err != nil {
		s.logger.Warn("failed to drop sessions after role change", zap.Error(err))
	}

	s.logger.Info("user role updated",
		zap.Int64("identity_id", identityID),
		zap.String("role", string(role)))
	return nil
}

// DeactivateUser soft deletes an account and drops its sessions.
func (s *AuthService) DeactivateUser(ctx context.Context, identityID int64) error {
	profile, err := s.authRepo.GetUserProfile(ctx, identityID)
	if err != nil {
		return err
	}
	if profile.Role == permissions.RoleAdmin {
		admins, err := s.authRepo.CountByRole(ctx, permissions.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return fmt.Errorf("cannot deactivate the last admin: %w", xerrors.ErrConflict)
		}
	}

	if err := s.authRepo.SoftDeleteIdentity(ctx, identityID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if err := s.LogoutAll(ctx, identityID); err != nil {
		s.logger.Warn("failed to drop sessions after deactivation", zap.Error(err))
	}

	s.logger.Info("user deactivated", zap.Int64("identity_id", identityID))
	return nil
}

// generateTempPassword returns a url-safe random password for bootstrap
// accounts.
func generateTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
