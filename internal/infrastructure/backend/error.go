package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/erp/orderdesk/internal/domain/shared"
)

// APIError is a non-2xx response from the backend. It matches
// shared.ErrUpstream with errors.Is.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return shared.ErrUpstream
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorBody covers both {"message": "..."} and the envelope shape
// {"success": false, "error": {"code": "...", "message": "..."}}.
type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Code
		apiErr.Message = strings.TrimSpace(eb.Message)

		if apiErr.Message == "" && len(eb.Error) > 0 {
			var detail errorDetail
			var text string
			switch {
			case json.Unmarshal(eb.Error, &detail) == nil:
				apiErr.Message = strings.TrimSpace(detail.Message)
				if detail.Code != "" {
					apiErr.Code = detail.Code
				}
			case json.Unmarshal(eb.Error, &text) == nil:
				apiErr.Message = strings.TrimSpace(text)
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = "unexpected response"
	}
	return apiErr
}
