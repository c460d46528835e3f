package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/like-mike/loja/shared/models"
)

const saleColumns = `s.id, s.client_id, s.valor, s.data, s.created_at`

func scanSale(row rowScanner, extra ...any) (*models.Sale, error) {
	var sale models.Sale
	dest := append([]any{&sale.ID, &sale.ClientID, &sale.Valor, &sale.Data, &sale.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &sale, nil
}

func saleFilterArgs(f models.SaleFilter) (int64, sql.NullString) {
	var data sql.NullString
	if f.Data != nil {
		data = sql.NullString{String: f.Data.String(), Valid: true}
	}
	return f.ClientID, data
}

// ListSales returns one page of sales, newest first, and the total number
// of matches.
func (s *Store) ListSales(ctx context.Context, f models.SaleFilter, p models.Pagination) ([]models.Sale, int64, error) {
	const where = `WHERE ($1 = 0 OR s.client_id = $1) AND ($2::date IS NULL OR s.data = $2::date)`
	clientID, data := saleFilterArgs(f)

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales s `+where, clientID, data).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `SELECT ` + saleColumns + ` FROM sales s ` + where + `
		ORDER BY s.data DESC, s.created_at DESC, s.id DESC
		LIMIT NULLIF($3, 0) OFFSET $4`
	rows, err := s.db.QueryContext(ctx, query, clientID, data, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, *sale)
	}
	return sales, total, rows.Err()
}

// ListSalesWithClients is ListSales joined with client names, without
// filters. It also returns the total number of sales.
func (s *Store) ListSalesWithClients(ctx context.Context, p models.Pagination) ([]models.SaleWithClient, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+saleColumns+`, c.nome_completo
		FROM sales s
		JOIN clients c ON c.id = s.client_id
		ORDER BY s.data DESC, s.created_at DESC, s.id DESC
		LIMIT NULLIF($1, 0) OFFSET $2`, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list sales with clients: %w", err)
	}
	defer rows.Close()

	sales := []models.SaleWithClient{}
	for rows.Next() {
		var name string
		sale, err := scanSale(rows, &name)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, models.SaleWithClient{Sale: *sale, ClientName: name})
	}
	return sales, total, rows.Err()
}

func (s *Store) GetSale(ctx context.Context, id int64) (*models.Sale, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.id = $1`, id)
	sale, err := scanSale(row)
	if err != nil {
		return nil, translate(err)
	}
	return sale, nil
}

// CreateSale inserts sale dated today. ID, Data and CreatedAt are filled in.
func (s *Store) CreateSale(ctx context.Context, sale *models.Sale) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sales (client_id, valor)
		VALUES ($1, $2)
		RETURNING id, data, created_at`,
		sale.ClientID, sale.Valor,
	).Scan(&sale.ID, &sale.Data, &sale.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

// UpdateSale writes client and valor. Data and CreatedAt are never changed.
func (s *Store) UpdateSale(ctx context.Context, sale *models.Sale) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE sales SET client_id = $2, valor = $3
		WHERE id = $1
		RETURNING data, created_at`,
		sale.ID, sale.ClientID, sale.Valor,
	).Scan(&sale.Data, &sale.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
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
