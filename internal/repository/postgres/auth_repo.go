// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flotaops-service/internal/domain/auth"
	"flotaops-service/internal/permissions"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// ========== Identity Methods ==========

const identityColumns = `
	id, email, password_hash, status, last_login,
	failed_login_attempts, locked_until, created_at, updated_at, deleted_at`

func scanIdentity(row pgx.Row) (*auth.Identity, error) {
	var identity auth.Identity
	err := row.Scan(
		&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Status, &identity.LastLogin,
		&identity.FailedLoginAttempts, &identity.LockedUntil,
		&identity.CreatedAt, &identity.UpdatedAt, &identity.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *AuthRepository) FindIdentityByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM auth_identities
		WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL
	`, identityColumns)

	identity, err := scanIdentity(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return identity, nil
}

func (r *AuthRepository) FindIdentityByID(ctx context.Context, id int64) (*auth.Identity, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM auth_identities
		WHERE id = $1 AND deleted_at IS NULL
	`, identityColumns)

	identity, err := scanIdentity(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return identity, nil
}

// CreateIdentityWithProfile inserts the identity and its profile in one
// transaction so a user never exists half-created.
func (r *AuthRepository) CreateIdentityWithProfile(ctx context.Context, identity *auth.Identity, profile *auth.UserProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO auth_identities (email, password_hash, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, identity.Email, identity.PasswordHash, identity.Status).
		Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create identity: %w", err)
	}

	profile.IdentityID = identity.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO user_profiles (identity_id, nombre, role, departamento, cargo, telefono, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, profile.IdentityID, profile.Nombre, profile.Role, profile.Departamento,
		profile.Cargo, profile.Telefono, profile.AvatarURL).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *AuthRepository) UpdateIdentityLastLogin(ctx context.Context, id int64) error {
	query := `
		UPDATE auth_identities
		SET last_login = $1, failed_login_attempts = 0, locked_until = NULL
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, time.Now(), id)
	return err
}

func (r *AuthRepository) IncrementFailedLoginAttempts(ctx context.Context, id int64, lockDuration time.Duration) error {
	query := `
		UPDATE auth_identities
		SET failed_login_attempts = failed_login_attempts + 1,
		    locked_until = CASE
		        WHEN failed_login_attempts + 1 >= 5 THEN $1
		        ELSE NULL
		    END
		WHERE id = $2
	`
	lockUntil := time.Now().Add(lockDuration)
	_, err := r.db.Exec(ctx, query, lockUntil, id)
	return err
}

func (r *AuthRepository) UpdateIdentityStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE auth_identities SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *AuthRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE auth_identities SET password_hash = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// SoftDeleteIdentity marks the identity as deleted without dropping the row,
// so historical records keep referring to it.
func (r *AuthRepository) SoftDeleteIdentity(ctx context.Context, id int64) error {
	query := `UPDATE auth_identities SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *AuthRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM auth_identities WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

// ========== User Profile Methods ==========

const profileColumns = `
	id, identity_id, nombre, role, departamento, cargo, telefono, avatar_url,
	created_at, updated_at`

func scanProfile(row pgx.Row) (*auth.UserProfile, error) {
	var profile auth.UserProfile
	err := row.Scan(
		&profile.ID, &profile.IdentityID, &profile.Nombre, &profile.Role,
		&profile.Departamento, &profile.Cargo, &profile.Telefono, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *AuthRepository) GetUserProfile(ctx context.Context, identityID int64) (*auth.UserProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_profiles WHERE identity_id = $1`, profileColumns)

	profile, err := scanProfile(r.db.QueryRow(ctx, query, identityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return profile, nil
}

func (r *AuthRepository) UpdateUserProfile(ctx context.Context, identityID int64, profile *auth.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET nombre = $1, departamento = $2, cargo = $3, telefono = $4,
		    avatar_url = $5, updated_at = $6
		WHERE identity_id = $7
	`

	result, err := r.db.Exec(
		ctx, query,
		profile.Nombre, profile.Departamento, profile.Cargo, profile.Telefono,
		profile.AvatarURL, time.Now(), identityID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *AuthRepository) UpdateUserRole(ctx context.Context, identityID int64, role permissions.Role) error {
	query := `UPDATE user_profiles SET role = $1, updated_at = $2 WHERE identity_id = $3`
	result, err := r.db.Exec(ctx, query, role, time.Now(), identityID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ListUsers returns every non-deleted identity joined with its profile,
// ordered by name.
func (r *AuthRepository) ListUsers(ctx context.Context) ([]auth.UserAccount, error) {
	query := `
		SELECT i.id, i.email, i.status, i.last_login,
		       p.nombre, p.role, p.departamento, p.cargo, p.telefono, p.avatar_url,
		       i.created_at
		FROM auth_identities i
		JOIN user_profiles p ON p.identity_id = i.id
		WHERE i.deleted_at IS NULL
		ORDER BY p.nombre
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []auth.UserAccount{}
	for rows.Next() {
		var u auth.UserAccount
		err := rows.Scan(
			&u.ID, &u.Email, &u.Status, &u.LastLogin,
			&u.Nombre, &u.Role, &u.Departamento, &u.Cargo, &u.Telefono, &u.AvatarURL,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *AuthRepository) CountByRole(ctx context.Context, role permissions.Role) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM auth_identities i
		JOIN user_profiles p ON p.identity_id = i.id
		WHERE i.deleted_at IS NULL AND p.role = $1
	`
	var total int64
	err := r.db.QueryRow(ctx, query, role).Scan(&total)
	return total, err
}

// ========== Verification Token Methods ==========

func (r *AuthRepository) CreateVerificationToken(ctx context.Context, token *auth.VerificationToken) error {
	query := `
		INSERT INTO auth_verification_tokens (identity_id, token_type, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		ctx, query,
		token.IdentityID, token.TokenType, token.Token, token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *AuthRepository) FindVerificationToken(ctx context.Context, tokenType, token string) (*auth.VerificationToken, error) {
	query := `
		SELECT id, identity_id, token_type, token, expires_at, used_at, attempts, created_at
		FROM auth_verification_tokens
		WHERE token_type = $1 AND token = $2 AND expires_at > NOW() AND used_at IS NULL
	`

	var vToken auth.VerificationToken
	err := r.db.QueryRow(ctx, query, tokenType, token).Scan(
		&vToken.ID, &vToken.IdentityID, &vToken.TokenType, &vToken.Token,
		&vToken.ExpiresAt, &vToken.UsedAt, &vToken.Attempts, &vToken.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find verification token: %w", err)
	}
	return &vToken, nil
}

func (r *AuthRepository) MarkTokenAsUsed(ctx context.Context, id int64) error {
	query := `UPDATE auth_verification_tokens SET used_at = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, time.Now(), id)
	return err
}

func (r *AuthRepository) IncrementTokenAttempts(ctx context.Context, id int64) error {
	query := `UPDATE auth_verification_tokens SET attempts = attempts + 1 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
