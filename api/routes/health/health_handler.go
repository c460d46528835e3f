package health

import "github.com/gofiber/fiber/v2"

type Pinger interface {
	Ping() error
}

// Handler reports "ok" when the store answers.
func Handler(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := p.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("database unavailable")
		}
		return c.SendString("ok")
	}
}
