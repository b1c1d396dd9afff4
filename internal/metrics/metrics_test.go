package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "successful request", path: "/ok", status: http.StatusOK},
		{name: "failed request", path: "/boom", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
		})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "/ok", "200")))
}

func TestRecordCalculation(t *testing.T) {
	before := testutil.ToFloat64(TierCalculationsTotal.WithLabelValues("success"))
	RecordCalculation(2*time.Millisecond, "success")
	assert.Equal(t, before+1, testutil.ToFloat64(TierCalculationsTotal.WithLabelValues("success")))
}

func TestRecordTierMatch(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		label     string
	}{
		{name: "matched tier", threshold: 3, label: "3"},
		{name: "no tier", threshold: 0, label: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(TierMatchesTotal.WithLabelValues(tt.label))
			RecordTierMatch(tt.threshold, 3)
			assert.Equal(t, before+1, testutil.ToFloat64(TierMatchesTotal.WithLabelValues(tt.label)))
		})
	}
}

func TestRecordSessionGuard(t *testing.T) {
	before := testutil.ToFloat64(SessionGuardTotal.WithLabelValues("reused"))
	RecordSessionGuard("reused")
	assert.Equal(t, before+1, testutil.ToFloat64(SessionGuardTotal.WithLabelValues("reused")))
}

func TestCacheMetrics(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit"))
	RecordCacheOperation("get", "hit")
	assert.Equal(t, before+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit")))

	UpdateCacheMetrics(50, 100)
	assert.Equal(t, 50.0, testutil.ToFloat64(CacheSize))
	assert.Equal(t, 100.0, testutil.ToFloat64(CacheCapacity))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("tier_configs", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("tier_configs")))
}
