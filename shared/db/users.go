package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/like-mike/loja/shared/models"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// CreateUser stores u with a fresh id.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		u.ID, u.Username, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}
