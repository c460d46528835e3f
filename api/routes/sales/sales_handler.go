package sales

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/like-mike/loja/api/render"
	"github.com/like-mike/loja/shared/db"
	"github.com/like-mike/loja/shared/models"
)

type Store interface {
	ListSales(ctx context.Context, f models.SaleFilter, p models.Pagination) ([]models.Sale, int64, error)
	GetSale(ctx context.Context, id int64) (*models.Sale, error)
	CreateSale(ctx context.Context, s *models.Sale) error
	UpdateSale(ctx context.Context, s *models.Sale) error
	DeleteSale(ctx context.Context, id int64) error
	GetClient(ctx context.Context, id int64) (*models.Client, error)
}

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

type Handler struct {
	Store       Store
	Log         *zap.Logger
	PageSize    int
	MaxPageSize int
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/sales", h.List)
	r.Post("/sales", h.Create)
	r.Get("/sales/:id", h.Get)
	r.Put("/sales/:id", h.Update(false))
	r.Patch("/sales/:id", h.Update(true))
	r.Delete("/sales/:id", h.Delete)
}

// List supports the client and data filters.
func (h *Handler) List(c *fiber.Ctx) error {
	p, err := render.Pagination(c, h.PageSize, h.MaxPageSize)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	filter, err := parseFilter(c)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	if filter.ClientID != 0 {
		_, err := h.Store.GetClient(c.UserContext(), filter.ClientID)
		if errors.Is(err, db.ErrNotFound) {
			return render.Error(c, h.Log, models.ValidationErrors{"client": {invalidChoice}})
		}
		if err != nil {
			return render.Error(c, h.Log, err)
		}
	}

	sales, total, err := h.Store.ListSales(c.UserContext(), filter, p)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	page, err := render.Page(c, p, total, sales)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(page)
}

func parseFilter(c *fiber.Ctx) (models.SaleFilter, error) {
	var f models.SaleFilter
	errs := models.ValidationErrors{}
	if raw := c.Query("client"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errs.Add("client", invalidChoice)
		}
		f.ClientID = id
	}
	if raw := c.Query("data"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			errs.Add("data", "Enter a valid date.")
		} else {
			f.Data = &d
		}
	}
	return f, errs.OrNil()
}

// decode parses the body. Amounts that are too large or too precise come
// back as validation errors on valor.
func decode(c *fiber.Ctx, in *models.SaleInput) error {
	err := c.BodyParser(in)
	if errors.Is(err, models.ErrMoneyDigits) || errors.Is(err, models.ErrMoneyDecimals) {
		return models.ValidationErrors{"valor": {err.Error()}}
	}
	return err
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in models.SaleInput
	if err := decode(c, &in); err != nil {
		return render.BadBody(c, h.Log, err)
	}
	if err := in.Validate(false); err != nil {
		return render.Error(c, h.Log, err)
	}

	var sale models.Sale
	in.Apply(&sale)
	if err := h.Store.CreateSale(c.UserContext(), &sale); err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := render.ID(c)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	sale, err := h.Store.GetSale(c.UserContext(), id)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(sale)
}

// Update returns the PUT handler, or the PATCH handler when partial is set.
// The sale's data and createdAt never change.
func (h *Handler) Update(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := render.ID(c)
		if err != nil {
			return render.Error(c, h.Log, err)
		}
		sale, err := h.Store.GetSale(c.UserContext(), id)
		if err != nil {
			return render.Error(c, h.Log, err)
		}

		var in models.SaleInput
		if err := decode(c, &in); err != nil {
			return render.BadBody(c, h.Log, err)
		}
		if err := in.Validate(partial); err != nil {
			return render.Error(c, h.Log, err)
		}
		in.Apply(sale)

		if err := h.Store.UpdateSale(c.UserContext(), sale); err != nil {
			return render.Error(c, h.Log, err)
		}
		return c.JSON(sale)
	}
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := render.ID(c)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	if err := h.Store.DeleteSale(c.UserContext(), id); err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
