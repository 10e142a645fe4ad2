package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in and out of the API.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key the correlation id is stored under.
// It doubles as the request-context key pkg/logger reads.
const RequestIDKey = "request_id"

// RequestIDMiddleware tags every request with a correlation id, reusing
// the caller's X-Request-ID when one is supplied. The id is echoed back
// in the response headers and placed in the request context so log lines
// for the same request share it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		ctx := context.WithValue(c.Request.Context(), RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
