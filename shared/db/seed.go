package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/like-mike/loja/shared/models"
)

// EnsureUser creates the user unless the username is taken. It reports
// whether a user was created.
func (s *Store) EnsureUser(ctx context.Context, username, passwordHash string) (bool, error) {
	if _, err := s.GetUserByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	err := s.CreateUser(ctx, &models.User{Username: username, PasswordHash: passwordHash})
	if errors.Is(err, ErrDuplicateUser) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create user %s: %w", username, err)
	}
	return true, nil
}

// SeedDemoData fills an empty store with a few clients and sales. It does
// nothing when any client exists.
func (s *Store) SeedDemoData(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []struct {
		name, email string
		birth       models.Date
		sales       []models.Money
	}{
		{"Ana Souza", "ana.souza@example.com", models.NewDate(1988, 4, 12), []models.Money{4990, 12900}},
		{"Bruno Lima", "bruno.lima@example.com", models.NewDate(1992, 11, 3), []models.Money{7550}},
		{"Carla Mendes", "carla.mendes@example.com", models.NewDate(1979, 7, 21), nil},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range demo {
		var clientID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO clients (nome_completo, email, data_nascimento)
			VALUES ($1, $2, $3)
			RETURNING id`, d.name, d.email, d.birth).Scan(&clientID)
		if err != nil {
			return fmt.Errorf("seed client %s: %w", d.email, err)
		}
		for _, valor := range d.sales {
			if _, err := tx.ExecContext(ctx, `INSERT INTO sales (client_id, valor) VALUES ($1, $2)`, clientID, valor); err != nil {
				return fmt.Errorf("seed sale: %w", err)
			}
		}
	}
	return tx.Commit()
}
