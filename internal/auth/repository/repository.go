package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is the database model for a staff account.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	DisplayName  string    `db:"display_name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Preferences holds per-user UI settings.
type Preferences struct {
	UserID uuid.UUID `db:"user_id"`
	Theme  string    `db:"theme"`
}

// Repository provides database operations for authentication.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser inserts a staff account.
func (r *Repository) CreateUser(ctx context.Context, email, displayName, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (email, display_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, display_name, password_hash, created_at`

	var u User
	err := r.pool.QueryRow(ctx, query, email, displayName, passwordHash).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, display_name, password_hash, created_at FROM users WHERE email = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT id, email, display_name, password_hash, created_at FROM users WHERE id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

const updatePasswordQuery = `UPDATE users SET password_hash = $2 WHERE id = $1`

// UpdatePassword replaces a user's stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, updatePasswordQuery, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// CreateRefreshToken stores the hash of an issued refresh token.
func (r *Repository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.pool.Exec(ctx, query, userID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken looks up a refresh token by hash.
func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	query := `SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = $1 AND revoked_at IS NULL`

	var userID uuid.UUID
	var expiresAt time.Time
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(&userID, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
		}
		return uuid.Nil, time.Time{}, fmt.Errorf("get refresh token: %w", err)
	}
	return userID, expiresAt, nil
}

// RevokeRefreshToken marks a refresh token as revoked.
func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	query := `UPDATE refresh_tokens SET revoked_at = now() WHERE token_hash = $1 AND revoked_at IS NULL`
	if _, err := r.pool.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllRefreshTokens revokes every active refresh token for a user.
func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return nil
}

// GetPreferences retrieves a user's preferences, defaulting to the light theme.
func (r *Repository) GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	query := `SELECT user_id, theme FROM user_preferences WHERE user_id = $1`

	var p Preferences
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.Theme); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Preferences{UserID: userID, Theme: "light"}, nil
		}
		return Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return p, nil
}

// UpsertPreferences stores a user's preferences.
func (r *Repository) UpsertPreferences(ctx context.Context, userID uuid.UUID, theme string) (Preferences, error) {
	query := `
		INSERT INTO user_preferences (user_id, theme)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme
		RETURNING user_id, theme`

	var p Preferences
	if err := r.pool.QueryRow(ctx, query, userID, theme).Scan(&p.UserID, &p.Theme); err != nil {
		return Preferences{}, fmt.Errorf("upsert preferences: %w", err)
	}
	return p, nil
}
