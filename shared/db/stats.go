package db

import (
	"context"
	"fmt"

	"github.com/like-mike/loja/shared/models"
)

// SalesByDay sums sales per date, oldest first.
func (s *Store) SalesByDay(ctx context.Context) ([]models.DailySales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data, COALESCE(SUM(valor), 0), COUNT(*)
		FROM sales
		GROUP BY data
		ORDER BY data`)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()

	stats := []models.DailySales{}
	for rows.Next() {
		var d models.DailySales
		if err := rows.Scan(&d.Data, &d.Total, &d.Quantidade); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// SalesByClient sums sales per client, ordered by name.
func (s *Store) SalesByClient(ctx context.Context) ([]models.ClientSales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.nome_completo, COALESCE(SUM(s.valor), 0), COUNT(s.id)
		FROM clients c
		LEFT JOIN sales s ON s.client_id = c.id
		GROUP BY c.id, c.nome_completo
		ORDER BY c.nome_completo, c.id`)
	if err != nil {
		return nil, fmt.Errorf("sales by client: %w", err)
	}
	defer rows.Close()

	stats := []models.ClientSales{}
	for rows.Next() {
		var c models.ClientSales
		if err := rows.Scan(&c.ID, &c.NomeCompleto, &c.TotalVendas, &c.QuantidadeVendas); err != nil {
			return nil, fmt.Errorf("scan client sales: %w", err)
		}
		stats = append(stats, c)
	}
	return stats, rows.Err()
}
