package pages

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/loja/shared/models"
	"github.com/like-mike/loja/ui/guard"
)

const pageSize = 50

// Store is what the pages read from.
type Store interface {
	ListClients(ctx context.Context, f models.ClientFilter, p models.Pagination) ([]models.Client, int64, error)
	ListSalesWithClients(ctx context.Context, p models.Pagination) ([]models.SaleWithClient, int64, error)
	SalesByDay(ctx context.Context) ([]models.DailySales, error)
	SalesByClient(ctx context.Context) ([]models.ClientSales, error)
}

type Handler struct {
	Store   Store
	Log     *zap.Logger
	AppName string
	APIURL  string
}

// RegisterRoutes registers the pages. Access control is left to the
// navigation guard installed on the engine.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/home") })
	r.GET("/home", h.Home)
	r.GET("/clientes", h.Clientes)
	r.GET("/vendas", h.Vendas)
	r.GET("/estatisticas", h.Estatisticas)
}

// Data merges the template values every page shares into data.
func (h *Handler) Data(c *gin.Context, data gin.H) gin.H {
	token, _ := c.Cookie(guard.TokenCookie)
	data["appName"] = h.AppName
	data["apiURL"] = h.APIURL
	data["isAuthenticated"] = token != ""
	return data
}

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", h.Data(c, gin.H{"title": "Início"}))
}

func (h *Handler) Clientes(c *gin.Context) {
	filter := models.ClientFilter{
		NomeCompleto: c.Query("nomeCompleto"),
		Email:        c.Query("email"),
	}
	p := pagination(c)
	clients, count, err := h.Store.ListClients(c.Request.Context(), filter, p)
	if err != nil {
		h.fail(c, "Failed to list clients", err)
		return
	}
	c.HTML(http.StatusOK, "clientes.html", h.Data(c, gin.H{
		"title":   "Clientes",
		"filter":  filter,
		"clients": clients,
		"count":   count,
		"pager":   newPager(c, p, count),
	}))
}

func (h *Handler) Vendas(c *gin.Context) {
	p := pagination(c)
	sales, count, err := h.Store.ListSalesWithClients(c.Request.Context(), p)
	if err != nil {
		h.fail(c, "Failed to list sales", err)
		return
	}
	c.HTML(http.StatusOK, "vendas.html", h.Data(c, gin.H{
		"title": "Vendas",
		"sales": sales,
		"count": count,
		"pager": newPager(c, p, count),
	}))
}

func (h *Handler) Estatisticas(c *gin.Context) {
	ctx := c.Request.Context()
	daily, err := h.Store.SalesByDay(ctx)
	if err != nil {
		h.fail(c, "Failed to load daily sales", err)
		return
	}
	byClient, err := h.Store.SalesByClient(ctx)
	if err != nil {
		h.fail(c, "Failed to load client sales", err)
		return
	}

	var total models.Money
	for _, d := range daily {
		total += d.Total
	}
	c.HTML(http.StatusOK, "estatisticas.html", h.Data(c, gin.H{
		"title":   "Estatísticas",
		"daily":   daily,
		"clients": byClient,
		"total":   total,
	}))
}

func pagination(c *gin.Context) models.Pagination {
	n, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || n < 1 {
		n = 1
	}
	return models.Pagination{Number: n, Size: pageSize}
}

// pager holds the links rendered under a listing. Prev and Next are empty
// at the ends.
type pager struct {
	Number int
	Prev   string
	Next   string
}

func newPager(c *gin.Context, p models.Pagination, total int64) pager {
	link := func(n int) string {
		q := c.Request.URL.Query()
		q.Set("page", strconv.Itoa(n))
		return c.Request.URL.Path + "?" + q.Encode()
	}
	pg := pager{Number: p.Number}
	if p.Number > 1 {
		pg.Prev = link(p.Number - 1)
	}
	if int64(p.Offset()+p.Size) < total {
		pg.Next = link(p.Number + 1)
	}
	return pg
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}
	h.Log.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "error.html", h.Data(c, gin.H{
		"title": "Erro",
		"error": "Não foi possível carregar a página.",
	}))
}
