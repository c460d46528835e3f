package main

import (
	"context"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/like-mike/loja/api/middleware"
	"github.com/like-mike/loja/api/routes"
	"github.com/like-mike/loja/shared/config"
	"github.com/like-mike/loja/shared/credentials"
	"github.com/like-mike/loja/shared/db"
	applog "github.com/like-mike/loja/shared/logger"
	"github.com/like-mike/loja/shared/token"
	"github.com/like-mike/loja/shared/tracer"
)

func main() {
	ctx := context.Background()

	// Load environment variables
	config.LoadEnv(".env", "../.env")
	cfg, err := config.LoadConfig("")
	if err != nil {
		applog.MustNew("info").Fatal("Failed to load configuration", zap.Error(err))
	}
	log := applog.MustNew(cfg.Log.Level)
	defer log.Sync()

	tp, err := tracer.InitTracer(ctx, cfg.Telemetry, cfg.App.Environment)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize DB
	conn, err := db.InitDB(ctx, config.ConnString(cfg.Database))
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer conn.Close()
	store := db.NewStore(conn)

	if err := seed(ctx, store, cfg.Auth.AdminUser, cfg.Auth.AdminPass, cfg.Database.Seed, log); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		log.Fatal("Invalid token configuration", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          routes.ErrorHandler(log),
	})
	app.Use(recover.New())
	// Add OpenTelemetry tracing middleware
	app.Use(otelfiber.Middleware())
	// Add Prometheus metrics middleware
	app.Use(middleware.PrometheusMiddleware())
	// Add HTTP logging middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.RegisterRoutes(app, routes.Deps{
		Store:       store,
		Tokens:      tokens,
		Log:         log,
		PageSize:    cfg.App.PageSize,
		MaxPageSize: cfg.App.MaxPageSize,
	})

	log.Info("Starting loja API server", zap.String("port", cfg.Server.APIPort))
	if err := app.Listen(":" + cfg.Server.APIPort); err != nil {
		log.Fatal("API server stopped", zap.Error(err))
	}
}

// seed creates the administrator account and, when asked, demo data.
func seed(ctx context.Context, store *db.Store, user, pass string, demo bool, log *zap.Logger) error {
	hash, err := credentials.HashPassword(pass)
	if err != nil {
		return err
	}
	created, err := store.EnsureUser(ctx, user, hash)
	if err != nil {
		return err
	}
	if created {
		log.Info("Created admin user", zap.String("username", user))
	}
	if demo {
		return store.SeedDemoData(ctx)
	}
	return nil
}
