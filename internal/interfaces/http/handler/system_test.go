package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler("orderdesk", "1.2.0", "test", nil)
	assert.NotNil(t, h)
	assert.False(t, h.startTime.IsZero())
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("orderdesk", "1.2.0", "test", func() map[string]int {
		return map[string]int{"sessions": 2, "industries": 8}
	})
	r := newEngine()
	r.GET("/system/info", h.GetSystemInfo)

	w := do(t, r, call{method: http.MethodGet, path: "/system/info"})
	require.Equal(t, http.StatusOK, w.Code)

	var info SystemInfoResponse
	resp := decodeData(t, w, &info)
	assert.True(t, resp.Success)
	assert.Equal(t, "orderdesk", info.Name)
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "test", info.Env)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
	assert.Equal(t, 2, info.Stats["sessions"])
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("orderdesk", "1.2.0", "test", nil)
	r := newEngine()
	r.GET("/system/ping", h.Ping)

	w := do(t, r, call{method: http.MethodGet, path: "/system/ping"})
	require.Equal(t, http.StatusOK, w.Code)

	var pong PingResponse
	decodeData(t, w, &pong)
	assert.Equal(t, "pong", pong.Message)
	assert.NotEmpty(t, pong.Timestamp)
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy without checks", func(t *testing.T) {
		h := NewSystemHandler("orderdesk", "1.2.0", "test", nil)
		r := newEngine()
		r.GET("/health", h.Health)

		w := do(t, r, call{method: http.MethodGet, path: "/health"})
		assert.Equal(t, http.StatusOK, w.Code)

		var got HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "healthy", got.Status)
	})

	t.Run("failing check is 503", func(t *testing.T) {
		h := NewSystemHandler("orderdesk", "1.2.0", "test", nil,
			HealthCheck{Name: "industries", Check: func(context.Context) error { return nil }},
			HealthCheck{Name: "ledger", Check: func(context.Context) error { return errors.New("session limit reached") }},
		)
		r := newEngine()
		r.GET("/health", h.Health)

		w := do(t, r, call{method: http.MethodGet, path: "/health"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var got HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "unhealthy", got.Status)
		assert.Equal(t, "ok", got.Checks["industries"])
		assert.Equal(t, "session limit reached", got.Checks["ledger"])
	})
}

func TestSystemHandler_NoRoute(t *testing.T) {
	h := NewSystemHandler("orderdesk", "1.2.0", "test", nil)
	r := newEngine()
	r.NoRoute(h.NoRoute)

	w := do(t, r, call{method: http.MethodGet, path: "/nowhere"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeData(t, w, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
}
