package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		to       string
		token    string
		redirect bool
	}{
		{"protected without token", "/clientes", "", true},
		{"protected with token", "/clientes", "abc123", false},
		{"public without token", "/home", "", false},
		{"sub-path is not protected", "/vendas/123", "", false},
		{"sales without token", "/vendas", "", true},
		{"stats without token", "/estatisticas", "", true},
		{"stats with token", "/estatisticas", "x", false},
		{"trailing slash is a different path", "/clientes/", "", false},
		{"login page", "/login", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(Navigation{To: tt.to, From: "/"}, tt.token)
			assert.Equal(t, tt.redirect, d.Redirect)
			if tt.redirect {
				assert.Equal(t, LoginPath, d.Location)
			} else {
				assert.True(t, d.Allowed())
				assert.Empty(t, d.Location)
			}
		})
	}
}

func TestEvaluateIgnoresOrigin(t *testing.T) {
	for _, from := range []string{"", "/login", "/clientes", "/home"} {
		assert.True(t, Evaluate(Navigation{To: "/vendas", From: from}, "").Redirect, "from %q", from)
		assert.True(t, Evaluate(Navigation{To: "/vendas", From: from}, "tok").Allowed(), "from %q", from)
	}
}

func TestEvaluatePublicPathsAlwaysAllowed(t *testing.T) {
	for _, to := range []string{"/", "/home", "/login", "/logout", "/CLIENTES", "/vendas/123", "/estatisticas/hoje"} {
		for _, tok := range []string{"", "abc"} {
			assert.True(t, Evaluate(Navigation{To: to}, tok).Allowed(), "to %q token %q", to, tok)
		}
	}
}

func TestProtectedPathsOrder(t *testing.T) {
	assert.Equal(t, [...]string{"/clientes", "/vendas", "/estatisticas"}, ProtectedPaths)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "page") }
	r.GET("/clientes", ok)
	r.GET("/vendas", ok)
	r.GET("/vendas/:id", ok)
	r.GET("/home", ok)
	return r
}

func TestMiddleware(t *testing.T) {
	r := newRouter()

	t.Run("redirects without cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	t.Run("empty cookie counts as absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: ""})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("passes with cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "abc123"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "page", w.Body.String())
	})

	t.Run("other cookies do not count", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "abc123"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("public page", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/home", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("sub-path is not caught", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vendas/123", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("htmx request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
		req.Header.Set("HX-Request", "true")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("HX-Redirect"))
		assert.Empty(t, w.Header().Get("Location"))
	})
}

func TestNavigationFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vendas?page=2", nil)
	req.Header.Set("Referer", "http://localhost:8080/home?x=1")
	nav := navigationFrom(req)
	assert.Equal(t, Navigation{To: "/vendas", From: "/home"}, nav)

	req = httptest.NewRequest(http.MethodGet, "/clientes", nil)
	assert.Equal(t, Navigation{To: "/clientes"}, navigationFrom(req))
}
