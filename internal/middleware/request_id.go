// Package middleware provides the HTTP middleware of the pricing service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ContextKey names values stored on the gin context.
type ContextKey string

const (
	// RequestIDKey holds the request id.
	RequestIDKey ContextKey = "request_id"
	// ActorKey holds the identity of the authenticated caller.
	ActorKey ContextKey = "actor"
)

// RequestID reuses the client's X-Request-ID or generates a UUID v4.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request id, or "" outside RequestID.
func GetRequestID(c *gin.Context) string {
	return getString(c, RequestIDKey)
}

// GetActor returns the caller identity set by APIKeyAuth, or "".
func GetActor(c *gin.Context) string {
	return getString(c, ActorKey)
}

func getString(c *gin.Context, key ContextKey) string {
	if v, exists := c.Get(string(key)); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
