package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"irisweb/common"
	"irisweb/database"
	"irisweb/models"
)

// UserRepository owns all reads and writes of the users table. Uniqueness is
// enforced by the store's constraint, not by check-then-insert.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, password, role string) (*models.User, error) {
	timestamp := NowWIB()

	var user models.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, username, password_hash, role, created_at, updated_at`,
		username, HashPassword(password), role, timestamp, timestamp,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE username = $1`,
		username,
	)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// UpdatePassword rehashes and overwrites the stored credential, refreshing
// updated_at.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		HashPassword(newPassword), NowWIB(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id int64, newUsername string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = $1, updated_at = $2 WHERE id = $3`,
		newUsername, NowWIB(), id,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("failed to update username: %w", err)
	}
	return nil
}

// Delete removes a user; the store cascades to the user's prediction rows.
// No current flow calls this, it exists so the cascade rule stays covered.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// EnsureAdmin makes sure the distinguished admin account exists before the
// server starts taking traffic. Idempotent: it creates the account when
// absent and promotes an existing same-named account with the wrong role.
func (r *UserRepository) EnsureAdmin(ctx context.Context, username, password string) error {
	admin, err := r.FindByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		_, err = r.Create(ctx, username, password, models.RoleAdmin)
		return err
	}
	if err != nil {
		return err
	}

	if admin.Role != models.RoleAdmin {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
			models.RoleAdmin, NowWIB(), admin.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to promote admin user: %w", err)
		}
	}
	return nil
}
