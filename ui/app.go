package main

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/loja/shared/config"
	"github.com/like-mike/loja/shared/credentials"
	"github.com/like-mike/loja/shared/db"
	"github.com/like-mike/loja/shared/logger"
	"github.com/like-mike/loja/shared/middleware"
	"github.com/like-mike/loja/shared/models"
	"github.com/like-mike/loja/shared/token"
	"github.com/like-mike/loja/shared/tracer"
	"github.com/like-mike/loja/ui/auth"
	"github.com/like-mike/loja/ui/guard"
	"github.com/like-mike/loja/ui/routes/health"
	"github.com/like-mike/loja/ui/routes/pages"
	"github.com/like-mike/loja/ui/templates"
)

// uiStore is what the UI server reads from.
type uiStore interface {
	health.Pinger
	credentials.UserStore
	pages.Store
}

// newRouter builds the UI engine. /health is the only route registered
// ahead of the navigation guard.
func newRouter(cfg *models.Config, log *zap.Logger, store uiStore, tokens auth.TokenIssuer, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CustomLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.TracingMiddleware(cfg.Telemetry.ServiceName))
	r.SetHTMLTemplate(tmpl)

	// Static health check
	r.GET("/health", health.Handler(store))

	// Every navigation below passes through the guard.
	r.Use(guard.Middleware())

	pageHandler := &pages.Handler{
		Store:   store,
		Log:     log,
		AppName: cfg.App.Name,
		APIURL:  cfg.Server.APIURL,
	}
	authHandler := &auth.Handler{
		Users:        store,
		Tokens:       tokens,
		SecureCookie: cfg.Auth.SecureCookie,
		Log:          log,
		Page:         pageHandler.Data,
	}
	authHandler.RegisterRoutes(r)
	pageHandler.RegisterRoutes(r)
	return r
}

func main() {
	ctx := context.Background()

	// Load environment variables
	config.LoadEnv(".env", "../.env")
	cfg, err := config.LoadConfig("")
	if err != nil {
		logger.MustNew("info").Fatal("Failed to load configuration", zap.Error(err))
	}
	log := logger.MustNew(cfg.Log.Level)
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

	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		log.Fatal("Invalid token configuration", zap.Error(err))
	}

	tmpl, err := templates.Load()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(cfg, log, store, tokens, tmpl)

	// Run server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.UIPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Starting loja UI server", zap.String("port", cfg.Server.UIPort))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("UI server stopped", zap.Error(err))
	}
}
