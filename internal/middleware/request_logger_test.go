package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success is info", status: http.StatusOK, wantLevel: "info"},
		{name: "client error is warn", status: http.StatusBadRequest, wantLevel: "warn"},
		{name: "server error is error", status: http.StatusServiceUnavailable, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := newRecordingLogs()
			router := gin.New()
			router.Use(RequestID(), RequestLogger(logs))
			router.POST("/api/cart/price", func(c *gin.Context) {
				c.Set(string(ActorKey), "api-key:****abcd")
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/cart/price", nil)
			req.Header.Set(RequestIDHeader, "req-7")
			req.Header.Set("User-Agent", "shop/1.0")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			entry := logs.next(t)
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.status, entry.StatusCode)
			assert.Equal(t, "req-7", entry.RequestID)
			assert.Equal(t, "/api/cart/price", entry.Path)
			assert.Equal(t, "shop/1.0", entry.UserAgent)
			assert.Equal(t, "api-key:****abcd", entry.Actor)
			assert.GreaterOrEqual(t, entry.Duration, int64(0))
		})
	}
}

func TestRequestLogger_WithoutService(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, "info", getLogLevel(http.StatusNoContent))
	assert.Equal(t, "info", getLogLevel(http.StatusFound))
	assert.Equal(t, "warn", getLogLevel(http.StatusNotFound))
	assert.Equal(t, "error", getLogLevel(http.StatusInternalServerError))
}
