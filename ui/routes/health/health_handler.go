package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping() error
}

// Handler reports "ok" when the store answers.
func Handler(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(); err != nil {
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
