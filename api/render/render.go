// Package render holds the JSON conventions shared by the API handlers:
// pagination envelopes and error bodies.
package render

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/like-mike/loja/shared/db"
	"github.com/like-mike/loja/shared/models"
)

var ErrInvalidPage = errors.New("invalid page")

// Detail is the body of non-field errors.
func Detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// Error maps err to a response. Unknown errors are logged and become 500.
func Error(c *fiber.Ctx, log *zap.Logger, err error) error {
	var verr models.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	case errors.Is(err, db.ErrNotFound):
		return Detail(c, fiber.StatusNotFound, "Not found.")
	case errors.Is(err, ErrInvalidPage):
		return Detail(c, fiber.StatusNotFound, "Invalid page.")
	case errors.Is(err, db.ErrDuplicateEmail):
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrors{
			"email": {"client with this E-mail already exists."},
		})
	case errors.Is(err, db.ErrUnknownClient):
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrors{
			"client": {"Invalid pk - object does not exist."},
		})
	case errors.Is(err, context.Canceled):
		return err
	}
	log.Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return Detail(c, fiber.StatusInternalServerError, "Internal server error.")
}

// BadJSON answers a body that could not be decoded.
func BadJSON(c *fiber.Ctx, err error) error {
	return Detail(c, fiber.StatusBadRequest, "JSON parse error - "+err.Error())
}

// BadBody answers a body that failed to decode. Validation errors raised
// while decoding keep their field form.
func BadBody(c *fiber.Ctx, log *zap.Logger, err error) error {
	var verr models.ValidationErrors
	if errors.As(err, &verr) {
		return Error(c, log, err)
	}
	return BadJSON(c, err)
}

// ID reads the :id route parameter. Anything but a positive integer is
// reported as not found.
func ID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, db.ErrNotFound
	}
	return id, nil
}

// Pagination reads page and page_size. page_size is capped at max.
func Pagination(c *fiber.Ctx, size, max int) (models.Pagination, error) {
	p := models.Pagination{Number: 1, Size: size}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, ErrInvalidPage
		}
		p.Number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Size = min(n, max)
		}
	}
	return p, nil
}

// Page wraps results in the pagination envelope. Asking for a page past
// the last one is an error, except page 1 of an empty listing.
func Page[T any](c *fiber.Ctx, p models.Pagination, total int64, results []T) (models.Page[T], error) {
	if p.Number > 1 && int64(p.Offset()) >= total {
		return models.Page[T]{}, ErrInvalidPage
	}
	page := models.Page[T]{Count: total, Results: results}
	if page.Results == nil {
		page.Results = []T{}
	}
	if int64(p.Offset()+len(results)) < total {
		next := pageURL(c, p.Number+1)
		page.Next = &next
	}
	if p.Number > 1 {
		prev := pageURL(c, p.Number-1)
		page.Previous = &prev
	}
	return page, nil
}

func pageURL(c *fiber.Ctx, number int) string {
	q := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		q.Add(string(k), string(v))
	})
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := c.BaseURL() + c.Path()
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
