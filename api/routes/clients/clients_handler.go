package clients

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/like-mike/loja/api/render"
	"github.com/like-mike/loja/shared/models"
)

type Store interface {
	ListClients(ctx context.Context, f models.ClientFilter, p models.Pagination) ([]models.Client, int64, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

type Handler struct {
	Store       Store
	Log         *zap.Logger
	PageSize    int
	MaxPageSize int
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/clients", h.List)
	r.Post("/clients", h.Create)
	r.Get("/clients/:id", h.Get)
	r.Put("/clients/:id", h.Update(false))
	r.Patch("/clients/:id", h.Update(true))
	r.Delete("/clients/:id", h.Delete)
}

// List supports exact-match filters on nomeCompleto and email.
func (h *Handler) List(c *fiber.Ctx) error {
	p, err := render.Pagination(c, h.PageSize, h.MaxPageSize)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	filter := models.ClientFilter{
		NomeCompleto: c.Query("nomeCompleto"),
		Email:        c.Query("email"),
	}

	clients, total, err := h.Store.ListClients(c.UserContext(), filter, p)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	page, err := render.Page(c, p, total, clients)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(page)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in models.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return render.BadJSON(c, err)
	}
	if err := in.Validate(false); err != nil {
		return render.Error(c, h.Log, err)
	}

	var client models.Client
	in.Apply(&client)
	if err := h.Store.CreateClient(c.UserContext(), &client); err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := render.ID(c)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	client, err := h.Store.GetClient(c.UserContext(), id)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(client)
}

// Update returns the PUT handler, or the PATCH handler when partial is set.
func (h *Handler) Update(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := render.ID(c)
		if err != nil {
			return render.Error(c, h.Log, err)
		}
		client, err := h.Store.GetClient(c.UserContext(), id)
		if err != nil {
			return render.Error(c, h.Log, err)
		}

		var in models.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return render.BadJSON(c, err)
		}
		if err := in.Validate(partial); err != nil {
			return render.Error(c, h.Log, err)
		}
		in.Apply(client)

		if err := h.Store.UpdateClient(c.UserContext(), client); err != nil {
			return render.Error(c, h.Log, err)
		}
		return c.JSON(client)
	}
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := render.ID(c)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	if err := h.Store.DeleteClient(c.UserContext(), id); err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
