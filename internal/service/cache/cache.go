// Package cache declares the result cache contract used by the calculator.
package cache

import "github.com/guttosm/tier-pricing-service/internal/domain/model"

// Cache stores priced carts keyed by a cart and rules digest.
type Cache interface {
	Get(key string) (model.PricedCart, bool)
	Set(key string, value model.PricedCart)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics is a point-in-time view of cache performance.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (m Metrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// CacheWithMetrics is a Cache that reports its own statistics.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
