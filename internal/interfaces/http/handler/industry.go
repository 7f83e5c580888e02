package handler

import (
	industryapp "github.com/erp/orderdesk/internal/application/industry"
	"github.com/gin-gonic/gin"
)

// IndustryHeader optionally names the caller's industry on /industry routes
const IndustryHeader = "X-Industry-ID"

// IndustryHandler serves industry profiles and their feature flags
type IndustryHandler struct {
	BaseHandler
	industryService *industryapp.IndustryService
}

// NewIndustryHandler creates a new IndustryHandler
func NewIndustryHandler(industryService *industryapp.IndustryService) *IndustryHandler {
	return &IndustryHandler{
		industryService: industryService,
	}
}

// List godoc
// @ID           listIndustries
// @Summary      List industry profiles
// @Tags         industries
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.IndustrySummary]
// @Router       /industries [get]
func (h *IndustryHandler) List(c *gin.Context) {
	industries := h.industryService.List(c.Request.Context())
	h.SuccessList(c, industries, len(industries))
}

// Get godoc
// @ID           getIndustry
// @Summary      Resolve an industry profile
// @Description  Unknown ids resolve to the general profile; resolved_from echoes the input
// @Tags         industries
// @Produce      json
// @Param        id path string true "Industry id"
// @Success      200 {object} APIResponse[dto.IndustryResponse]
// @Router       /industries/{id} [get]
func (h *IndustryHandler) Get(c *gin.Context) {
	h.Success(c, h.industryService.Resolve(c.Request.Context(), c.Param("id")))
}

// Current godoc
// @ID           getCurrentIndustry
// @Summary      Resolve the caller's industry profile
// @Description  Uses the X-Industry-ID header, or the configured default industry when it is absent
// @Tags         industries
// @Produce      json
// @Param        X-Industry-ID header string false "Industry id"
// @Success      200 {object} APIResponse[dto.IndustryResponse]
// @Router       /industry [get]
func (h *IndustryHandler) Current(c *gin.Context) {
	h.Success(c, h.industryService.Resolve(c.Request.Context(), c.GetHeader(IndustryHeader)))
}

// CurrentFeatures godoc
// @ID           getCurrentIndustryFeatures
// @Summary      Feature flags of the caller's industry
// @Tags         industries
// @Produce      json
// @Param        X-Industry-ID header string false "Industry id"
// @Success      200 {object} APIResponse[dto.FeatureSetResponse]
// @Router       /industry/features [get]
func (h *IndustryHandler) CurrentFeatures(c *gin.Context) {
	h.Success(c, h.industryService.Features(c.Request.Context(), c.GetHeader(IndustryHeader)))
}

// Features godoc
// @ID           getIndustryFeatures
// @Summary      Feature flags and vocabulary of an industry
// @Tags         industries
// @Produce      json
// @Param        id path string true "Industry id"
// @Success      200 {object} APIResponse[dto.FeatureSetResponse]
// @Router       /industries/{id}/features [get]
func (h *IndustryHandler) Features(c *gin.Context) {
	h.Success(c, h.industryService.Features(c.Request.Context(), c.Param("id")))
}

// Feature godoc
// @ID           checkIndustryFeature
// @Summary      Check one feature flag
// @Tags         industries
// @Produce      json
// @Param        id      path string true "Industry id"
// @Param        feature path string true "Feature name, e.g. patient_tracking"
// @Success      200 {object} APIResponse[dto.FeatureCheckResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /industries/{id}/features/{feature} [get]
func (h *IndustryHandler) Feature(c *gin.Context) {
	resp, err := h.industryService.FeatureEnabled(c.Request.Context(), c.Param("id"), c.Param("feature"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
