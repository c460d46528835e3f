package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/like-mike/loja/api/render"
	"github.com/like-mike/loja/shared/token"
)

const claimsKey = "claims"

type TokenParser interface {
	Parse(raw string, want token.Type) (*token.Claims, error)
}

// JWTAuth rejects requests without a valid access token and stores the
// token's claims for downstream handlers.
func JWTAuth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return render.Detail(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
		}

		claims, err := tokens.Parse(raw, token.Access)
		if err != nil {
			return render.Detail(c, fiber.StatusUnauthorized, "Given token not valid for any token type")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the claims stored by JWTAuth.
func Claims(c *fiber.Ctx) (*token.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*token.Claims)
	return claims, ok
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if len(value) < len(bearer) || !strings.EqualFold(value[:len(bearer)], bearer) {
		return "", false
	}

	tok := strings.TrimSpace(value[len(bearer):])
	if tok == "" {
		return "", false
	}
	return tok, true
}
