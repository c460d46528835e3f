package stats

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/like-mike/loja/api/render"
	"github.com/like-mike/loja/shared/models"
)

type Store interface {
	SalesByDay(ctx context.Context) ([]models.DailySales, error)
	SalesByClient(ctx context.Context) ([]models.ClientSales, error)
}

type Handler struct {
	Store Store
	Log   *zap.Logger
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/stats/vendas-por-dia", h.SalesByDay)
	r.Get("/stats/clientes", h.SalesByClient)
}

func (h *Handler) SalesByDay(c *fiber.Ctx) error {
	stats, err := h.Store.SalesByDay(c.UserContext())
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(stats)
}

func (h *Handler) SalesByClient(c *fiber.Ctx) error {
	stats, err := h.Store.SalesByClient(c.UserContext())
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(stats)
}
