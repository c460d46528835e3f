package routes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/like-mike/loja/shared/db"
	"github.com/like-mike/loja/shared/models"
)

// memStore is an in-memory Store with the same constraints as the
// PostgreSQL schema.
type memStore struct {
	mu      sync.Mutex
	clients map[int64]models.Client
	sales   map[int64]models.Sale
	users   map[string]*models.User
	nextID  int64
	today   models.Date
}

func newMemStore() *memStore {
	return &memStore{
		clients: map[int64]models.Client{},
		sales:   map[int64]models.Sale{},
		users:   map[string]*models.User{},
		today:   models.Today(),
	}
}

func (m *memStore) Ping() error { return nil }

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) emailTaken(email string, except int64) bool {
	for _, c := range m.clients {
		if c.Email == email && c.ID != except {
			return true
		}
	}
	return false
}

func window[T any](items []T, p models.Pagination) []T {
	start := min(p.Offset(), len(items))
	end := len(items)
	if p.Size > 0 {
		end = min(start+p.Size, len(items))
	}
	return items[start:end]
}

func (m *memStore) ListClients(_ context.Context, f models.ClientFilter, p models.Pagination) ([]models.Client, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Client
	for _, c := range m.clients {
		if (f.NomeCompleto == "" || c.NomeCompleto == f.NomeCompleto) && (f.Email == "" || c.Email == f.Email) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NomeCompleto != out[j].NomeCompleto {
			return out[i].NomeCompleto < out[j].NomeCompleto
		}
		return out[i].ID < out[j].ID
	})
	return window(out, p), int64(len(out)), nil
}

func (m *memStore) GetClient(_ context.Context, id int64) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) CreateClient(_ context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(c.Email, 0) {
		return db.ErrDuplicateEmail
	}
	c.ID = m.id()
	c.CreatedAt = time.Now()
	m.clients[c.ID] = *c
	return nil
}

func (m *memStore) UpdateClient(_ context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.clients[c.ID]
	if !ok {
		return db.ErrNotFound
	}
	if m.emailTaken(c.Email, c.ID) {
		return db.ErrDuplicateEmail
	}
	c.CreatedAt = old.CreatedAt
	m.clients[c.ID] = *c
	return nil
}

func (m *memStore) DeleteClient(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.clients, id)
	for sid, s := range m.sales {
		if s.ClientID == id {
			delete(m.sales, sid)
		}
	}
	return nil
}

func (m *memStore) ListSales(_ context.Context, f models.SaleFilter, p models.Pagination) ([]models.Sale, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Sale
	for _, s := range m.sales {
		if (f.ClientID == 0 || s.ClientID == f.ClientID) && (f.Data == nil || s.Data.Equal(f.Data.Time)) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, p), int64(len(out)), nil
}

func (m *memStore) GetSale(_ context.Context, id int64) (*models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &s, nil
}

func (m *memStore) CreateSale(_ context.Context, s *models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[s.ClientID]; !ok {
		return db.ErrUnknownClient
	}
	s.ID = m.id()
	s.Data = m.today
	s.CreatedAt = time.Now()
	m.sales[s.ID] = *s
	return nil
}

func (m *memStore) UpdateSale(_ context.Context, s *models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.sales[s.ID]
	if !ok {
		return db.ErrNotFound
	}
	if _, ok := m.clients[s.ClientID]; !ok {
		return db.ErrUnknownClient
	}
	s.Data, s.CreatedAt = old.Data, old.CreatedAt
	m.sales[s.ID] = *s
	return nil
}

func (m *memStore) DeleteSale(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.sales, id)
	return nil
}

func (m *memStore) SalesByDay(context.Context) ([]models.DailySales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byDay := map[models.Date]*models.DailySales{}
	for _, s := range m.sales {
		d, ok := byDay[s.Data]
		if !ok {
			d = &models.DailySales{Data: s.Data}
			byDay[s.Data] = d
		}
		d.Total += s.Valor
		d.Quantidade++
	}
	out := []models.DailySales{}
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data.Before(out[j].Data.Time) })
	return out, nil
}

func (m *memStore) SalesByClient(context.Context) ([]models.ClientSales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ClientSales{}
	for _, c := range m.clients {
		cs := models.ClientSales{ID: c.ID, NomeCompleto: c.NomeCompleto}
		for _, s := range m.sales {
			if s.ClientID == c.ID {
				cs.TotalVendas += s.Valor
				cs.QuantidadeVendas++
			}
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NomeCompleto < out[j].NomeCompleto })
	return out, nil
}
