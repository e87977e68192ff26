package repository

import (
	"context"
	"errors"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

type UserRepository struct {
	gw storage.Gateway
}

func NewUserRepository(gw storage.Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.gw.FetchOne(ctx,
		"SELECT username, password_hash, created_at FROM users WHERE username = ?",
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user; an existing username yields domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users (username, password_hash, created_at)
VALUES (?, ?, ?)
ON CONFLICT (username) DO NOTHING`
	n, err := r.gw.Execute(ctx, q, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserExists
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, hash string) error {
	n, err := r.gw.Execute(ctx, "UPDATE users SET password_hash = ? WHERE username = ?", hash, username)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
