package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("registers routes under versioned prefix", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("orders", "/orders").
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("honors custom API version", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("bills", "/bills").
			GET("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

		NewRouter(engine, WithAPIVersion("v2")).Register(group).Setup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v2/bills/abc", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("products", "/products").
			Use(func(c *gin.Context) {
				c.Header("X-Group", "products")
				c.Next()
			}).
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, "products", w.Header().Get("X-Group"))
	})
}
