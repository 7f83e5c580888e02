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

func text(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", text("pong"))
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse_OnlyAppliesToAPI(t *testing.T) {
	engine := gin.New()
	engine.GET("/outside", text("outside"))

	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-API", "yes")
		c.Next()
	})
	g := NewDomainGroup("test", "/test")
	g.GET("", text("inside"))
	r.Register(g).Setup()

	assert.Equal(t, "yes", serve(engine, http.MethodGet, "/api/v1/test").Header().Get("X-API"))
	assert.Empty(t, serve(engine, http.MethodGet, "/outside").Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("ledger", "/ledger")
		assert.Equal(t, "ledger", g.Name())
		assert.Equal(t, "/ledger", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", text("get"))
		g.POST("/items", text("post"))
		g.PUT("/items/:id", text("put"))
		g.DELETE("/items/:id", text("delete"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "get", serve(engine, http.MethodGet, "/api/v1/test/items").Body.String())
		assert.Equal(t, "post", serve(engine, http.MethodPost, "/api/v1/test/items").Body.String())
		assert.Equal(t, "put", serve(engine, http.MethodPut, "/api/v1/test/items/1").Body.String())
		assert.Equal(t, "delete", serve(engine, http.MethodDelete, "/api/v1/test/items/1").Body.String())
	})

	t.Run("group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test").Use(func(c *gin.Context) {
			c.Header("X-Group", "test")
			c.Next()
		})
		g.GET("/x", text("x"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "test", serve(engine, http.MethodGet, "/api/v1/test/x").Header().Get("X-Group"))
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("ledger", "/ledger")
		g.Group("requests", "/requests").GET("/:id", text("request"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "request", serve(engine, http.MethodGet, "/api/v1/ledger/requests/pr-1").Body.String())
	})
}

func TestDomainGroupRoutes(t *testing.T) {
	g := NewDomainGroup("ledger", "/ledger")
	g.DELETE("/session", text(""))
	requests := g.Group("requests", "/requests")
	requests.POST("", text(""))
	requests.GET("/:id", text(""))

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodDelete, Path: "/ledger/session"},
		{Method: http.MethodPost, Path: "/ledger/requests"},
		{Method: http.MethodGet, Path: "/ledger/requests/:id"},
	}, g.Routes())
}
