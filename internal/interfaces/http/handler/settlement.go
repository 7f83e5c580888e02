package handler

import (
	"strings"

	settlementapp "github.com/erp/orderdesk/internal/application/settlement"
	"github.com/erp/orderdesk/internal/application/settlement/dto"
	"github.com/erp/orderdesk/internal/domain/settlement"
	"github.com/erp/orderdesk/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SettlementHandler serves payment and settlement aggregation
type SettlementHandler struct {
	BaseHandler
	settlementService *settlementapp.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *settlementapp.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// Methods godoc
// @ID           listSettlementMethods
// @Summary      Accepted payment and settlement methods
// @Tags         settlements
// @Produce      json
// @Success      200 {object} APIResponse[dto.MethodsResponse]
// @Router       /settlements/methods [get]
func (h *SettlementHandler) Methods(c *gin.Context) {
	h.Success(c, h.settlementService.Methods(c.Request.Context()))
}

// Summarize godoc
// @ID           summarizeSettlements
// @Summary      Total caller-supplied payment or settlement records
// @Description  Amounts are formatted for the Accept-Language header
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body dto.SummaryRequest true "Records"
// @Success      200 {object} APIResponse[dto.SummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /settlements/summary [post]
func (h *SettlementHandler) Summarize(c *gin.Context) {
	var req dto.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.settlementService.Summarize(c.Request.Context(), req, settlement.ParseLanguage(c.GetHeader("Accept-Language")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestPayments godoc
// @ID           getRequestPayments
// @Summary      Payment history of a purchase request
// @Description  Without total_owed the request's total in the session ledger is used
// @Tags         settlements
// @Produce      json
// @Param        id         path  string true  "Purchase request id"
// @Param        total_owed query string false "Owed amount override"
// @Success      200 {object} APIResponse[dto.HistoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      504 {object} ErrorResponse
// @Router       /settlements/requests/{id}/payments [get]
func (h *SettlementHandler) RequestPayments(c *gin.Context) {
	q, ok := h.historyQuery(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.RequestPayments(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AccountSettlements godoc
// @ID           getAccountSettlements
// @Summary      Settlement history of an account
// @Tags         settlements
// @Produce      json
// @Param        id         path  string true  "Account id"
// @Param        total_owed query string false "Owed amount"
// @Success      200 {object} APIResponse[dto.HistoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      504 {object} ErrorResponse
// @Router       /settlements/accounts/{id} [get]
func (h *SettlementHandler) AccountSettlements(c *gin.Context) {
	q, ok := h.historyQuery(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.AccountSettlements(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// historyQuery reads the path id, the optional total_owed query and the
// caller's language. It writes a 400 and returns false on a bad amount.
func (h *SettlementHandler) historyQuery(c *gin.Context) (dto.HistoryQuery, bool) {
	q := dto.HistoryQuery{
		SessionID: middleware.GetSessionID(c),
		ID:        c.Param("id"),
		Language:  settlement.ParseLanguage(c.GetHeader("Accept-Language")),
	}

	if raw := strings.TrimSpace(c.Query("total_owed")); raw != "" {
		owed, err := decimal.NewFromString(raw)
		if err != nil || owed.IsNegative() {
			h.BadRequest(c, "total_owed must be a non-negative amount")
			return q, false
		}
		q.TotalOwed = &owed
	}
	return q, true
}
