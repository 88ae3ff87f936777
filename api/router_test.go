package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func (pingController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/secret", func(c *gin.Context) { c.String(http.StatusOK, "secret") })
}

func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	t.Run("middleware guards only protected routes", func(t *testing.T) {
		r := NewRouter(Config{
			BaseURL:                 "/api",
			Mode:                    gin.TestMode,
			Controllers:             []i.Controller{pingController{}},
			AuthorizationMiddleware: denyAll,
		})
		h := r.Handler()

		w := serve(h, "/api/v1/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())

		w = serve(h, "/api/v1/secret")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("nil middleware leaves protected routes open", func(t *testing.T) {
		r := NewRouter(Config{
			BaseURL:     "/api",
			Mode:        gin.TestMode,
			Controllers: []i.Controller{pingController{}},
		})

		w := serve(r.Handler(), "/api/v1/secret")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
