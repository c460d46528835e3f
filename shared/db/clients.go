package db

import (
	"context"
	"fmt"

	"github.com/like-mike/loja/shared/models"
)

const clientColumns = `id, nome_completo, email, data_nascimento, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.NomeCompleto, &c.Email, &c.DataNascimento, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns one page of clients ordered by name and the total
// number of matches.
func (s *Store) ListClients(ctx context.Context, f models.ClientFilter, p models.Pagination) ([]models.Client, int64, error) {
	const where = `WHERE ($1 = '' OR nome_completo = $1) AND ($2 = '' OR email = $2)`

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients `+where, f.NomeCompleto, f.Email).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients ` + where + `
		ORDER BY nome_completo, id
		LIMIT NULLIF($3, 0) OFFSET $4`
	rows, err := s.db.QueryContext(ctx, query, f.NomeCompleto, f.Email, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, total, rows.Err()
}

func (s *Store) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO clients (nome_completo, email, data_nascimento)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		c.NomeCompleto, c.Email, c.DataNascimento,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

// UpdateClient writes every writable field of c.
func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE clients SET nome_completo = $2, email = $3, data_nascimento = $4
		WHERE id = $1
		RETURNING created_at`,
		c.ID, c.NomeCompleto, c.Email, c.DataNascimento,
	).Scan(&c.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

// DeleteClient removes the client and, through the foreign key, its sales.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
