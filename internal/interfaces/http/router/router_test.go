package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("sales", "/sales")
	group.GET("/orders", func(c *gin.Context) {
		c.String(http.StatusOK, "orders")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/sales/orders", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Touched", "yes")
		c.Next()
	})

	group := NewDomainGroup("sales", "/sales")
	group.GET("/orders", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/sales/orders", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Touched"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("inventory", "/inventory")
		assert.Equal(t, "inventory", g.Name())
		assert.Equal(t, "/inventory", g.Prefix())
	})

	t.Run("registers routes for each HTTP method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("pricing", "/pricing")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("/rules", ok).
			POST("/rules", ok).
			PUT("/rules/:id", ok).
			PATCH("/rules/:id", ok).
			DELETE("/rules/:id", ok)

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		for _, method := range []string{"GET", "POST"} {
			req := httptest.NewRequest(method, "/api/v1/pricing/rules", nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, method)
		}
		for _, method := range []string{"PUT", "PATCH", "DELETE"} {
			req := httptest.NewRequest(method, "/api/v1/pricing/rules/123", nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, method)
		}
	})

	t.Run("applies group middleware before handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("sales", "/sales")
		g.Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})
		g.GET("/orders", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/sales/orders", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("registers nested subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("sales", "/sales")
		sub := g.Group("approvals", "/approvals")
		sub.GET("/pending", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/sales/approvals/pending", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
