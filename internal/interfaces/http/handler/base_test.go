package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/erp/orderdesk/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "sentinel keeps its message",
			err:         shared.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: "Resource not found",
		},
		{
			name:        "wrapped keeps the detail",
			err:         fmt.Errorf("%w: purchase request 'pr-9'", shared.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: "Resource not found: purchase request 'pr-9'",
		},
		{
			name:        "invalid state is 422",
			err:         shared.Errorf(shared.ErrInvalidState, "cannot move from completed to pending"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeInvalidState,
			wantMessage: "cannot move from completed to pending",
		},
		{
			name:        "invalid input is 400",
			err:         shared.Errorf(shared.ErrInvalidInput, "unknown feature 'x'"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeInvalidInput,
			wantMessage: "unknown feature 'x'",
		},
		{
			name:        "upstream is 502",
			err:         fmt.Errorf("fetch payments: %w", shared.Errorf(shared.ErrUpstream, "backend returned 503: maintenance")),
			wantStatus:  http.StatusBadGateway,
			wantCode:    dto.ErrCodeUpstream,
			wantMessage: "fetch payments: backend returned 503: maintenance",
		},
		{
			name:       "deadline is 504",
			err:        fmt.Errorf("get payments: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrCodeUpstreamTimeout,
		},
		{
			name:        "unknown error is 500",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeInternal,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newEngine()
			r.GET("/err", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := do(t, r, call{method: http.MethodGet, path: "/err", headers: map[string]string{"X-Request-ID": "req-1"}})

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Error.Message)
			}
		})
	}
}

func TestHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	r := newEngine()
	r.GET("/ok", func(c *gin.Context) {
		h.HandleError(c, nil)
		if !c.Writer.Written() {
			h.Success(c, "fine")
		}
	})

	w := do(t, r, call{method: http.MethodGet, path: "/ok"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBindError(t *testing.T) {
	type body struct {
		Name string `json:"name" binding:"required"`
	}
	h := &BaseHandler{}
	r := newEngine()
	r.POST("/bind", func(c *gin.Context) {
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			h.BindError(c, err)
			return
		}
		h.Success(c, b)
	})

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing field", `{}`, dto.ErrCodeValidation},
		{"malformed json", `{"name":`, dto.ErrCodeInvalidJSON},
		{"wrong type", `{"name": 5}`, dto.ErrCodeInvalidJSON},
		{"empty body", ``, dto.ErrCodeInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, call{method: http.MethodPost, path: "/bind", body: tt.body})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeData(t, w, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
