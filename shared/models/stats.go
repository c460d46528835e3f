package models

// DailySales aggregates the sales of one day.
type DailySales struct {
	Data       Date  `json:"data"`
	Total      Money `json:"total"`
	Quantidade int64 `json:"quantidade"`
}

// ClientSales aggregates the sales of one client. Clients without sales
// are included with zero totals.
type ClientSales struct {
	ID               int64  `json:"id"`
	NomeCompleto     string `json:"nomeCompleto"`
	TotalVendas      Money  `json:"totalVendas"`
	QuantidadeVendas int64  `json:"quantidadeVendas"`
}
