package handler

import (
	ledgerapp "github.com/erp/orderdesk/internal/application/ledger"
	"github.com/erp/orderdesk/internal/application/ledger/dto"
	"github.com/erp/orderdesk/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PurchaseRequestHandler serves the caller's purchase request ledger. Every
// route works on the session named by the X-Session-ID header.
type PurchaseRequestHandler struct {
	BaseHandler
	requestService *ledgerapp.PurchaseRequestService
}

// NewPurchaseRequestHandler creates a new PurchaseRequestHandler
func NewPurchaseRequestHandler(requestService *ledgerapp.PurchaseRequestService) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{
		requestService: requestService,
	}
}

// Create godoc
// @ID           createPurchaseRequest
// @Summary      Record a purchase request
// @Description  New requests are always pending with zero charges and go to the front of the ledger
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Ledger session"
// @Param        request body dto.CreatePurchaseRequestRequest true "Purchase request"
// @Success      201 {object} APIResponse[dto.PurchaseRequestResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /ledger/requests [post]
func (h *PurchaseRequestHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.requestService.Create(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listPurchaseRequests
// @Summary      List purchase requests, newest first
// @Tags         ledger
// @Produce      json
// @Param        status query string false "pending, unlocked, paid or completed"
// @Success      200 {object} APIResponse[[]dto.PurchaseRequestResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /ledger/requests [get]
func (h *PurchaseRequestHandler) List(c *gin.Context) {
	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	requests, err := h.requestService.List(c.Request.Context(), middleware.GetSessionID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, requests, len(requests))
}

// Summary godoc
// @ID           summarizePurchaseRequests
// @Summary      Count purchase requests per status
// @Tags         ledger
// @Produce      json
// @Success      200 {object} APIResponse[dto.StatusSummaryResponse]
// @Router       /ledger/requests/summary [get]
func (h *PurchaseRequestHandler) Summary(c *gin.Context) {
	h.Success(c, h.requestService.Summary(c.Request.Context(), middleware.GetSessionID(c)))
}

// Get godoc
// @ID           getPurchaseRequest
// @Summary      Get a purchase request
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Request id"
// @Success      200 {object} APIResponse[dto.PurchaseRequestResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/requests/{id} [get]
func (h *PurchaseRequestHandler) Get(c *gin.Context) {
	resp, err := h.requestService.Get(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updatePurchaseRequestStatus
// @Summary      Move a purchase request to another status
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id path string true "Request id"
// @Param        request body dto.UpdateStatusRequest true "Target status"
// @Success      200 {object} APIResponse[dto.PurchaseRequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /ledger/requests/{id}/status [put]
func (h *PurchaseRequestHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.requestService.UpdateStatus(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateCharges godoc
// @ID           updatePurchaseRequestCharges
// @Summary      Set the extra charges of a purchase request
// @Description  The total becomes subtotal + charges
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id path string true "Request id"
// @Param        request body dto.UpdateChargesRequest true "Charges"
// @Success      200 {object} APIResponse[dto.PurchaseRequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/requests/{id}/charges [put]
func (h *PurchaseRequestHandler) UpdateCharges(c *gin.Context) {
	var req dto.UpdateChargesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.requestService.UpdateCharges(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// EndSession godoc
// @ID           endLedgerSession
// @Summary      Drop the caller's session ledger
// @Tags         ledger
// @Success      204
// @Router       /ledger/session [delete]
func (h *PurchaseRequestHandler) EndSession(c *gin.Context) {
	h.requestService.EndSession(c.Request.Context(), middleware.GetSessionID(c))
	h.NoContent(c)
}
