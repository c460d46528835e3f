package token

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/like-mike/loja/api/render"
	"github.com/like-mike/loja/shared/credentials"
	"github.com/like-mike/loja/shared/metrics"
	"github.com/like-mike/loja/shared/models"
	"github.com/like-mike/loja/shared/token"
)

type Tokens interface {
	IssuePair(userID, username string) (access, refresh string, err error)
	IssueAccess(userID, username string) (string, error)
	Parse(raw string, want token.Type) (*token.Claims, error)
}

// Handler issues token pairs for username/password logins and exchanges
// refresh tokens for new access tokens.
type Handler struct {
	Users  credentials.UserStore
	Tokens Tokens
	Log    *zap.Logger
}

func (h *Handler) Register(r fiber.Router) {
	r.Post("/token", h.Obtain)
	r.Post("/token/refresh", h.Refresh)
}

func (h *Handler) Obtain(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return render.BadJSON(c, err)
	}
	errs := models.ValidationErrors{}
	if req.Username == "" {
		errs.Add("username", "This field is required.")
	}
	if req.Password == "" {
		errs.Add("password", "This field is required.")
	}
	if err := errs.OrNil(); err != nil {
		return render.Error(c, h.Log, err)
	}

	user, err := credentials.Authenticate(c.UserContext(), h.Users, req.Username, req.Password)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		metrics.RecordLogin(metrics.ServerAPI, metrics.OutcomeFailure)
		return render.Detail(c, fiber.StatusUnauthorized, err.Error())
	}
	if err != nil {
		metrics.RecordLogin(metrics.ServerAPI, metrics.OutcomeError)
		return render.Error(c, h.Log, err)
	}

	access, refresh, err := h.Tokens.IssuePair(user.ID, user.Username)
	if err != nil {
		metrics.RecordLogin(metrics.ServerAPI, metrics.OutcomeError)
		return render.Error(c, h.Log, err)
	}
	metrics.RecordLogin(metrics.ServerAPI, metrics.OutcomeSuccess)
	return c.JSON(models.TokenPair{Access: access, Refresh: refresh})
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return render.BadJSON(c, err)
	}
	if req.Refresh == "" {
		return render.Error(c, h.Log, models.ValidationErrors{"refresh": {"This field is required."}})
	}

	claims, err := h.Tokens.Parse(req.Refresh, token.Refresh)
	if err != nil {
		return render.Detail(c, fiber.StatusUnauthorized, "Token is invalid or expired")
	}
	access, err := h.Tokens.IssueAccess(claims.Subject, claims.Username)
	if err != nil {
		return render.Error(c, h.Log, err)
	}
	return c.JSON(models.TokenPair{Access: access})
}
