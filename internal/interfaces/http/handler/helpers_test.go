package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/orderdesk/internal/interfaces/http/dto"
	"github.com/erp/orderdesk/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newEngine returns an engine with the request and session middleware the
// handlers rely on
func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Session())
	return r
}

type call struct {
	method  string
	path    string
	body    any
	session string
	headers map[string]string
}

func do(t *testing.T, r http.Handler, c call) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := c.body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.Header.Set(middleware.HeaderSessionID, c.session)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the envelope and then its data field into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()

	var env struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env.Response
}

// decodeAs unmarshals the whole envelope with a typed data field
func decodeAs[T any](t *testing.T, w *httptest.ResponseRecorder) APIResponse[T] {
	t.Helper()

	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
