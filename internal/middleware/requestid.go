package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestIDKey is the gin context key holding the request identifier.
const CtxRequestIDKey = "request_id"

// RequestIDHeader is the header carrying the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an identifier, honouring one supplied by
// the caller and minting a uuid otherwise. The id is echoed on the response
// and stored in the gin context for the access log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(CtxRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
