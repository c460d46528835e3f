// Package guard decides whether a page navigation may proceed or must be
// sent to the login page.
//
// The check is presence-only: a non-empty token cookie lets the visitor
// through. The token is never parsed here; the API server validates it on
// every call.
package guard

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"
	// TokenCookie holds the session token set by the login flow.
	TokenCookie = "token"
)

// ProtectedPaths lists the pages that need a session. Matching is exact:
// "/vendas/123" is not covered by "/vendas".
var ProtectedPaths = [...]string{"/clientes", "/vendas", "/estatisticas"}

// Navigation is a single page transition.
type Navigation struct {
	To   string
	From string
}

// Decision is the outcome of Evaluate. The zero value allows navigation.
type Decision struct {
	Redirect bool
	Location string
}

// Allowed reports whether navigation proceeds to its destination.
func (d Decision) Allowed() bool {
	return !d.Redirect
}

// IsProtected reports whether path is one of ProtectedPaths.
func IsProtected(path string) bool {
	for _, p := range ProtectedPaths {
		if p == path {
			return true
		}
	}
	return false
}

// Evaluate returns a redirect to LoginPath when nav targets a protected
// page and token is empty. From is not consulted.
func Evaluate(nav Navigation, token string) Decision {
	if IsProtected(nav.To) && token == "" {
		return Decision{Redirect: true, Location: LoginPath}
	}
	return Decision{}
}

// Middleware runs Evaluate on every request. A missing or unreadable
// cookie counts as an absent token.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil {
			token = ""
		}

		d := Evaluate(navigationFrom(c.Request), token)
		if d.Allowed() {
			c.Next()
			return
		}

		// htmx swaps responses in place, so ask it to navigate instead.
		if c.GetHeader("HX-Request") == "true" {
			c.Header("HX-Redirect", d.Location)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Redirect(http.StatusFound, d.Location)
		c.Abort()
	}
}

func navigationFrom(r *http.Request) Navigation {
	nav := Navigation{To: r.URL.Path}
	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil {
			nav.From = u.Path
		}
	}
	return nav
}
