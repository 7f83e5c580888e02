package router

import (
	"net/http"
	"strings"
	"testing"

	industryapp "github.com/erp/orderdesk/internal/application/industry"
	ledgerapp "github.com/erp/orderdesk/internal/application/ledger"
	settlementapp "github.com/erp/orderdesk/internal/application/settlement"
	"github.com/erp/orderdesk/internal/domain/industry"
	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/erp/orderdesk/internal/interfaces/http/handler"
	"github.com/erp/orderdesk/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMountedEngine(t *testing.T) (*gin.Engine, []RouteInfo) {
	t.Helper()
	middleware.SetupValidator()

	log := zap.NewNop()
	requests := ledgerapp.NewPurchaseRequestService(ledger.NewSessions(ledger.SessionsConfig{}), nil, log)
	h := Handlers{
		Industry:        handler.NewIndustryHandler(industryapp.NewIndustryService(industry.NewRegistry(), "", nil, log)),
		PurchaseRequest: handler.NewPurchaseRequestHandler(requests),
		Settlement:      handler.NewSettlementHandler(settlementapp.NewSettlementService(nil, requests, nil, log)),
		System:          handler.NewSystemHandler("orderdesk", "test", "test", nil),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Session())
	return engine, Mount(engine, h)
}

func TestMount_RegistersAPI(t *testing.T) {
	_, routes := newMountedEngine(t)

	want := []RouteInfo{
		{"GET", "/api/v1/industries"},
		{"GET", "/api/v1/industries/:id"},
		{"GET", "/api/v1/industries/:id/features"},
		{"GET", "/api/v1/industries/:id/features/:feature"},
		{"GET", "/api/v1/industry"},
		{"GET", "/api/v1/industry/features"},
		{"POST", "/api/v1/ledger/requests"},
		{"GET", "/api/v1/ledger/requests"},
		{"GET", "/api/v1/ledger/requests/summary"},
		{"GET", "/api/v1/ledger/requests/:id"},
		{"PUT", "/api/v1/ledger/requests/:id/status"},
		{"PUT", "/api/v1/ledger/requests/:id/charges"},
		{"DELETE", "/api/v1/ledger/session"},
		{"GET", "/api/v1/settlements/methods"},
		{"POST", "/api/v1/settlements/summary"},
		{"GET", "/api/v1/settlements/requests/:id/payments"},
		{"GET", "/api/v1/settlements/accounts/:id"},
		{"GET", "/api/v1/system/ping"},
		{"GET", "/api/v1/system/info"},
		{"GET", "/health"},
	}
	assert.ElementsMatch(t, want, routes)
}

func TestMount_EngineServesRoutes(t *testing.T) {
	engine, _ := newMountedEngine(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/system/ping", http.StatusOK},
		{http.MethodGet, "/api/v1/industries", http.StatusOK},
		{http.MethodGet, "/api/v1/industries/retail/features", http.StatusOK},
		{http.MethodGet, "/api/v1/industry", http.StatusOK},
		{http.MethodGet, "/api/v1/industry/features", http.StatusOK},
		{http.MethodGet, "/api/v1/ledger/requests/summary", http.StatusOK},
		{http.MethodGet, "/api/v1/ledger/requests/missing", http.StatusNotFound},
		{http.MethodGet, "/api/v1/settlements/methods", http.StatusOK},
		{http.MethodDelete, "/api/v1/ledger/session", http.StatusNoContent},
		{http.MethodGet, "/api/v1/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMount_NoRouteUsesEnvelope(t *testing.T) {
	engine, _ := newMountedEngine(t)

	w := serve(engine, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"code":"ERR_NOT_FOUND"`))
}
