package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/like-mike/loja/api/middleware"
	"github.com/like-mike/loja/api/routes/clients"
	"github.com/like-mike/loja/api/routes/health"
	"github.com/like-mike/loja/api/routes/sales"
	"github.com/like-mike/loja/api/routes/stats"
	"github.com/like-mike/loja/api/routes/token"
	"github.com/like-mike/loja/shared/credentials"
)

// Store is everything the API reads and writes.
type Store interface {
	clients.Store
	sales.Store
	stats.Store
	credentials.UserStore
	health.Pinger
}

type Deps struct {
	Store       Store
	Tokens      token.Tokens
	Log         *zap.Logger
	PageSize    int
	MaxPageSize int
}

// RegisterRoutes mounts the public endpoints and the authenticated /api
// group on app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", health.Handler(d.Store))

	api := app.Group("/api")
	api.Get("/", Index)
	(&token.Handler{Users: d.Store, Tokens: d.Tokens, Log: d.Log}).Register(api)

	// Routes registered above stay public.
	protected := api.Group("", middleware.JWTAuth(d.Tokens))
	(&clients.Handler{Store: d.Store, Log: d.Log, PageSize: d.PageSize, MaxPageSize: d.MaxPageSize}).Register(protected)
	(&sales.Handler{Store: d.Store, Log: d.Log, PageSize: d.PageSize, MaxPageSize: d.MaxPageSize}).Register(protected)
	(&stats.Handler{Store: d.Store, Log: d.Log}).Register(protected)
}

// Index is the API's welcome document.
func Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "Loja de Brinquedos API",
		"message": "Bem-vindo à API da loja!",
		"endpoints": fiber.Map{
			"token":          "/api/token/",
			"clients":        "/api/clients/",
			"sales":          "/api/sales/",
			"vendas-por-dia": "/api/stats/vendas-por-dia/",
			"clientes":       "/api/stats/clientes/",
		},
	})
}

// ErrorHandler renders errors that escape handlers in the API's format.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error."
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"detail": msg})
	}
}
