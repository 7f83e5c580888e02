package router

import (
	"github.com/erp/orderdesk/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers mounted by Mount
type Handlers struct {
	Industry        *handler.IndustryHandler
	PurchaseRequest *handler.PurchaseRequestHandler
	Settlement      *handler.SettlementHandler
	System          *handler.SystemHandler
}

// IndustryRoutes returns the /industries group
func IndustryRoutes(h *handler.IndustryHandler) *DomainGroup {
	g := NewDomainGroup("industry", "/industries")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/features", h.Features)
	g.GET("/:id/features/:feature", h.Feature)
	return g
}

// CurrentIndustryRoutes returns the /industry group, which resolves the
// industry from a header or the configured default
func CurrentIndustryRoutes(h *handler.IndustryHandler) *DomainGroup {
	g := NewDomainGroup("current_industry", "/industry")
	g.GET("", h.Current)
	g.GET("/features", h.CurrentFeatures)
	return g
}

// LedgerRoutes returns the /ledger group
func LedgerRoutes(h *handler.PurchaseRequestHandler) *DomainGroup {
	g := NewDomainGroup("ledger", "/ledger")
	requests := g.Group("requests", "/requests")
	requests.POST("", h.Create)
	requests.GET("", h.List)
	requests.GET("/summary", h.Summary)
	requests.GET("/:id", h.Get)
	requests.PUT("/:id/status", h.UpdateStatus)
	requests.PUT("/:id/charges", h.UpdateCharges)
	g.DELETE("/session", h.EndSession)
	return g
}

// SettlementRoutes returns the /settlements group
func SettlementRoutes(h *handler.SettlementHandler) *DomainGroup {
	g := NewDomainGroup("settlement", "/settlements")
	g.GET("/methods", h.Methods)
	g.POST("/summary", h.Summarize)
	g.GET("/requests/:id/payments", h.RequestPayments)
	g.GET("/accounts/:id", h.AccountSettlements)
	return g
}

// SystemRoutes returns the /system group
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/ping", h.Ping)
	g.GET("/info", h.GetSystemInfo)
	return g
}

// Mount registers every API group on engine, plus /health and the JSON 404
// handler outside the versioned prefix. It returns the mounted routes.
func Mount(engine *gin.Engine, h Handlers, opts ...RouterOption) []RouteInfo {
	r := NewRouter(engine, opts...)

	groups := []*DomainGroup{
		IndustryRoutes(h.Industry),
		CurrentIndustryRoutes(h.Industry),
		LedgerRoutes(h.PurchaseRequest),
		SettlementRoutes(h.Settlement),
		SystemRoutes(h.System),
	}

	var routes []RouteInfo
	for _, g := range groups {
		r.Register(g)
		for _, info := range g.Routes() {
			routes = append(routes, RouteInfo{Method: info.Method, Path: joinPath(r.BasePath(), info.Path)})
		}
	}
	r.Setup()

	engine.GET("/health", h.System.Health)
	routes = append(routes, RouteInfo{Method: "GET", Path: "/health"})

	engine.NoRoute(h.System.NoRoute)

	return routes
}
