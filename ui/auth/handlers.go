package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/loja/shared/credentials"
	"github.com/like-mike/loja/shared/metrics"
	"github.com/like-mike/loja/shared/models"
	"github.com/like-mike/loja/ui/guard"
)

// TokenIssuer mints the access token stored in the session cookie.
type TokenIssuer interface {
	IssueAccess(userID, username string) (string, error)
	AccessTTL() time.Duration
}

// Handler serves the login and logout pages. It is the only place that
// writes the token cookie the guard looks for.
type Handler struct {
	Users        credentials.UserStore
	Tokens       TokenIssuer
	SecureCookie bool
	Log          *zap.Logger
	// Page adds shared template data (app name, API URL) to a page.
	Page func(c *gin.Context, data gin.H) gin.H
}

// RegisterRoutes registers the public authentication routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET(guard.LoginPath, h.LoginPage)
	r.POST(guard.LoginPath, h.Login)
	r.GET("/logout", h.Logout)
}

func (h *Handler) page(c *gin.Context, data gin.H) gin.H {
	data["title"] = "Entrar"
	if h.Page != nil {
		return h.Page(c, data)
	}
	return data
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.page(c, gin.H{}))
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		metrics.RecordLogin(metrics.ServerUI, metrics.OutcomeFailure)
		c.HTML(http.StatusUnauthorized, "login.html", h.page(c, gin.H{
			"error":    "Informe usuário e senha.",
			"username": req.Username,
		}))
		return
	}

	user, err := credentials.Authenticate(c.Request.Context(), h.Users, req.Username, req.Password)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		metrics.RecordLogin(metrics.ServerUI, metrics.OutcomeFailure)
		h.Log.Info("Login rejected", zap.String("username", req.Username))
		c.HTML(http.StatusUnauthorized, "login.html", h.page(c, gin.H{
			"error":    "Usuário ou senha inválidos.",
			"username": req.Username,
		}))
		return
	}
	if err != nil {
		h.fail(c, "Failed to authenticate user", err)
		return
	}

	tok, err := h.Tokens.IssueAccess(user.ID, user.Username)
	if err != nil {
		h.fail(c, "Failed to issue token", err)
		return
	}

	metrics.RecordLogin(metrics.ServerUI, metrics.OutcomeSuccess)
	h.Log.Info("User logged in", zap.String("username", user.Username))
	h.setTokenCookie(c, tok, int(h.Tokens.AccessTTL().Seconds()))

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.Redirect(http.StatusFound, guard.LoginPath)
}

// setTokenCookie writes the session cookie. It is readable from scripts
// because pages forward it to the API as a bearer token.
func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(guard.TokenCookie, value, maxAge, "/", "", h.SecureCookie, false)
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	metrics.RecordLogin(metrics.ServerUI, metrics.OutcomeError)
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}
	h.Log.Error(msg, zap.Error(err))
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "error.html", h.page(c, gin.H{
		"error": "Não foi possível entrar agora. Tente novamente.",
	}))
}
