package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/erp/orderdesk/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthCheck is one named readiness probe
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	env       string
	startTime time.Time
	checks    []HealthCheck
	stats     func() map[string]int
}

// NewSystemHandler creates a new SystemHandler. stats, when set, feeds the
// counters reported by /system/info.
func NewSystemHandler(name, version, env string, stats func() map[string]int, checks ...HealthCheck) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		env:       env,
		startTime: time.Now(),
		checks:    checks,
		stats:     stats,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string         `json:"name"`
	Version   string         `json:"version"`
	Env       string         `json:"env"`
	GoVersion string         `json:"go_version"`
	Uptime    string         `json:"uptime"`
	Stats     map[string]int `json:"stats,omitempty"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		Env:       h.env,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.stats != nil {
		info.Stats = h.stats()
	}

	h.Success(c, info)
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health godoc
// @ID           health
// @Summary      Liveness and readiness
// @Description  Returns 503 when any probe fails
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "healthy"}
	status := http.StatusOK

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp.Checks = make(map[string]string, len(h.checks))
		for _, check := range h.checks {
			if err := check.Check(ctx); err != nil {
				resp.Checks[check.Name] = err.Error()
				resp.Status = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[check.Name] = "ok"
		}
	}

	c.JSON(status, resp)
}

// NoRoute answers unknown paths with the standard error envelope
func (h *SystemHandler) NoRoute(c *gin.Context) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Route not found")
}
