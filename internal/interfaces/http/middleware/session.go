package middleware

import (
	"net/http"
	"strings"

	"github.com/erp/orderdesk/internal/domain/ledger"
	"github.com/erp/orderdesk/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DefaultSessionID is the ledger session used when a client sends no
// X-Session-ID header
const DefaultSessionID = ledger.DefaultSessionID

// MaxSessionIDLength bounds the X-Session-ID header
const MaxSessionIDLength = 128

// Session resolves the caller's ledger session from the X-Session-ID header
// and stores it under SessionIDKey. Oversized or non-printable IDs are
// rejected with 400.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(HeaderSessionID))
		if sessionID == "" {
			sessionID = DefaultSessionID
		}
		if !validSessionID(sessionID) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Invalid X-Session-ID header",
				GetRequestID(c),
			))
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Writer.Header().Set(HeaderSessionID, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session resolved by Session, or DefaultSessionID
// when the middleware did not run
func GetSessionID(c *gin.Context) string {
	if id := c.GetString(SessionIDKey); id != "" {
		return id
	}
	return DefaultSessionID
}

func validSessionID(id string) bool {
	if len(id) > MaxSessionIDLength {
		return false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}
