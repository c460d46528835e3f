package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/like-mike/loja/shared/models"
	"github.com/like-mike/loja/ui/guard"
	"github.com/like-mike/loja/ui/templates"
)

type fakeStore struct {
	clients []models.Client
	total   int64
	sales   []models.SaleWithClient
	daily   []models.DailySales
	byUser  []models.ClientSales
	err     error

	gotFilter models.ClientFilter
	gotPage   models.Pagination
}

func (f *fakeStore) ListClients(_ context.Context, filter models.ClientFilter, p models.Pagination) ([]models.Client, int64, error) {
	f.gotFilter, f.gotPage = filter, p
	return f.clients, f.count(len(f.clients)), f.err
}

func (f *fakeStore) ListSalesWithClients(_ context.Context, p models.Pagination) ([]models.SaleWithClient, int64, error) {
	f.gotPage = p
	return f.sales, f.count(len(f.sales)), f.err
}

func (f *fakeStore) count(n int) int64 {
	if f.total > 0 {
		return f.total
	}
	return int64(n)
}

func (f *fakeStore) SalesByDay(context.Context) ([]models.DailySales, error) {
	return f.daily, f.err
}

func (f *fakeStore) SalesByClient(context.Context) ([]models.ClientSales, error) {
	return f.byUser, f.err
}

func newRouter(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := templates.Load()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(guard.Middleware())
	h := &Handler{Store: store, Log: zap.NewNop(), AppName: "loja", APIURL: "http://api"}
	h.RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, path string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: guard.TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectedPagesRedirectWithoutToken(t *testing.T) {
	r := newRouter(t, &fakeStore{})
	for _, p := range guard.ProtectedPaths {
		w := get(r, p, "")
		assert.Equal(t, http.StatusFound, w.Code, p)
		assert.Equal(t, guard.LoginPath, w.Header().Get("Location"), p)
	}
}

func TestHomeIsPublic(t *testing.T) {
	r := newRouter(t, &fakeStore{})
	w := get(r, "/home", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loja de Brinquedos")
	assert.Contains(t, w.Body.String(), `href="/login"`)

	w = get(r, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
}

func TestClientes(t *testing.T) {
	store := &fakeStore{clients: []models.Client{
		{ID: 1, NomeCompleto: "Alice", Email: "alice@example.com", DataNascimento: models.NewDate(2000, 1, 1)},
	}}
	r := newRouter(t, store)

	w := get(r, "/clientes?nomeCompleto=Alice&page=2", "abc123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.Contains(t, w.Body.String(), "01/01/2000")
	assert.Contains(t, w.Body.String(), `href="/logout"`)
	assert.Equal(t, "Alice", store.gotFilter.NomeCompleto)
	assert.Equal(t, models.Pagination{Number: 2, Size: pageSize}, store.gotPage)
}

func TestVendas(t *testing.T) {
	store := &fakeStore{sales: []models.SaleWithClient{{
		Sale:       models.Sale{ID: 1, ClientID: 1, Valor: 5000, Data: models.NewDate(2024, 2, 10)},
		ClientName: "Cliente Teste",
	}}}
	r := newRouter(t, store)

	w := get(r, "/vendas?page=abc", "abc123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "R$ 50.00")
	assert.Equal(t, 1, store.gotPage.Number)
}

func TestListingPager(t *testing.T) {
	store := &fakeStore{
		clients: []models.Client{{ID: 1, NomeCompleto: "Alice", Email: "alice@example.com"}},
		total:   3*pageSize + 1,
	}
	r := newRouter(t, store)

	w := get(r, "/clientes?nomeCompleto=Alice&page=2", "abc123")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Página 2")
	assert.Contains(t, body, "Anterior")
	assert.Contains(t, body, "Próxima")
	assert.Contains(t, body, "nomeCompleto=Alice")
	assert.Contains(t, body, "page=1")
	assert.Contains(t, body, "page=3")

	w = get(r, "/clientes?page=4", "abc123")
	assert.Contains(t, w.Body.String(), "Anterior")
	assert.NotContains(t, w.Body.String(), "Próxima")

	store.total = 0
	w = get(r, "/vendas", "abc123")
	assert.NotContains(t, w.Body.String(), "Anterior")
	assert.NotContains(t, w.Body.String(), "Próxima")
}

func TestEstatisticas(t *testing.T) {
	store := &fakeStore{
		daily: []models.DailySales{
			{Data: models.NewDate(2024, 1, 1), Total: 1000, Quantidade: 1},
			{Data: models.NewDate(2024, 1, 2), Total: 2550, Quantidade: 2},
		},
		byUser: []models.ClientSales{{ID: 1, NomeCompleto: "Alice", TotalVendas: 3550, QuantidadeVendas: 3}},
	}
	r := newRouter(t, store)

	w := get(r, "/estatisticas", "abc123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total vendido: R$ 35.50")
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestStoreFailureRendersError(t *testing.T) {
	r := newRouter(t, &fakeStore{err: errors.New("db down")})
	w := get(r, "/clientes", "abc123")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Não foi possível carregar a página.")
}
