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

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_BasePath(t *testing.T) {
	assert.Equal(t, "/api", NewRouter(gin.New()).BasePath())
	assert.Equal(t, "/api/v2", NewRouter(gin.New(), WithAPIVersion("v2")).BasePath())
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	menu := NewDomainGroup("menu", "/menu")
	menu.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	kitchen := NewDomainGroup("kitchen", "/kitchen")
	kitchen.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "busy") })

	r.Register(menu).Register(kitchen).Setup()

	w := serve(engine, "GET", "/api/menu/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "busy", serve(engine, "GET", "/api/kitchen/ping").Body.String())
	assert.Equal(t, []string{"GET /menu/ping", "GET /kitchen/ping"}, r.Routes())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("tables", "/tables")
		assert.Equal(t, "tables", g.Name())
		assert.Equal(t, "/tables", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }

		g := NewDomainGroup("tables", "/tables")
		g.GET("/:id", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id/status", ok).
			DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api"))

		for _, tc := range []struct{ method, path string }{
			{"GET", "/api/tables/1"},
			{"POST", "/api/tables"},
			{"PUT", "/api/tables/1"},
			{"PATCH", "/api/tables/1/status"},
			{"DELETE", "/api/tables/1"},
		} {
			assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.path).Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("middleware only wraps its own group", func(t *testing.T) {
		engine := gin.New()
		mark := func(c *gin.Context) {
			c.Header("X-Scoped", "yes")
			c.Next()
		}

		public := NewDomainGroup("public", "/tables")
		public.GET("/qr/:token", func(c *gin.Context) { c.Status(http.StatusOK) })
		scoped := NewDomainGroup("scoped", "/tables").Use(mark)
		scoped.GET("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

		api := engine.Group("/api")
		public.RegisterRoutes(api)
		scoped.RegisterRoutes(api)

		assert.Empty(t, serve(engine, "GET", "/api/tables/qr/abc").Header().Get("X-Scoped"))
		assert.Equal(t, "yes", serve(engine, "GET", "/api/tables/42").Header().Get("X-Scoped"))
	})

	t.Run("lists declared routes", func(t *testing.T) {
		g := NewDomainGroup("kitchen", "/kitchen")
		g.GET("/orders", nil).PUT("/items/:id", nil)
		g.Group("batches", "/orders/:id/batches").POST("/:batch/advance", nil)

		assert.Equal(t, []string{
			"GET /kitchen/orders",
			"PUT /kitchen/items/:id",
			"POST /kitchen/orders/:id/batches/:batch/advance",
		}, g.Routes())
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		reports := NewDomainGroup("reports", "/reports")
		reports.Group("sales", "/sales").GET("/summary", func(c *gin.Context) {
			c.String(http.StatusOK, "summary")
		})
		reports.RegisterRoutes(engine.Group("/api"))

		assert.Equal(t, "summary", serve(engine, "GET", "/api/reports/sales/summary").Body.String())
	})
}
