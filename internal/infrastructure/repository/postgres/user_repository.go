package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `username, email, full_name, password_hash, avatar_url, role, created_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, email, full_name, password_hash, avatar_url, role, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.AvatarURL, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.WrapError(domain.ErrConflict, "create user", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row, "get user by email", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row, "get user by username", username)
}

func scanUser(row *sql.Row, operation, key string) (*domain.User, error) {
	var user domain.User
	var fullName, avatarURL, role sql.NullString

	err := row.Scan(&user.Username, &user.Email, &fullName, &user.PasswordHash, &avatarURL, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, operation, fmt.Errorf("%s", key))
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.FullName = fullName.String
	user.AvatarURL = avatarURL.String
	user.Role = role.String
	return &user, nil
}

// isUniqueViolation matches the postgres 23505 error class without taking a
// dependency on driver error types in the repository layer.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
