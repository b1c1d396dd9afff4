// Package metrics exposes Prometheus collectors for the tier pricing service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// TierCalculationsTotal counts cart pricing runs by outcome.
	TierCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tier_calculations_total",
			Help: "Total number of tier discount calculations",
		},
		[]string{"status"},
	)

	// TierCalculationDuration tracks how long a pricing run takes end to end.
	TierCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tier_calculation_duration_seconds",
			Help:    "Tier discount calculation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// TierMatchesTotal counts matched tiers by threshold. "none" means no tier applied.
	TierMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tier_matches_total",
			Help: "Number of calculations per matched tier threshold",
		},
		[]string{"threshold"},
	)

	// DiscountedUnits observes how many units received the tier price per calculation.
	DiscountedUnits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tier_discounted_units",
			Help:    "Units priced at the discounted rate per calculation",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50, 100, 500},
		},
	)

	// SessionGuardTotal counts pre-pricing hook calls by outcome (computed or reused).
	SessionGuardTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_session_guard_total",
			Help: "Pre-pricing hook invocations by guard outcome",
		},
		[]string{"outcome"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState reports breaker state per name: 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCalculation records the outcome and duration of a pricing run.
func RecordCalculation(duration time.Duration, status string) {
	TierCalculationDuration.Observe(duration.Seconds())
	TierCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordTierMatch records the matched threshold and the number of discounted units.
// A threshold of 0 means nothing matched.
func RecordTierMatch(threshold, discountedUnits int) {
	label := "none"
	if threshold > 0 {
		label = strconv.Itoa(threshold)
	}
	TierMatchesTotal.WithLabelValues(label).Inc()
	DiscountedUnits.Observe(float64(discountedUnits))
}

// RecordSessionGuard records whether a pre-pricing call computed or reused a result.
func RecordSessionGuard(outcome string) {
	SessionGuardTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
