package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// PricingRoutes registers the pricing, tier and catalog endpoints.
type PricingRoutes struct {
	handler  *Handler
	tiers    *TierConfigHandler
	products *ProductHandler
}

var _ RouteGroup = (*PricingRoutes)(nil)

// NewPricingRoutes creates PricingRoutes. Nil handlers are skipped.
func NewPricingRoutes(handler *Handler, tiers *TierConfigHandler, products *ProductHandler) *PricingRoutes {
	return &PricingRoutes{handler: handler, tiers: tiers, products: products}
}

// RegisterRoutes registers the routes on rg.
func (r *PricingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	if r.handler != nil {
		rg.POST("/cart/price", r.handler.PriceCart)
		rg.POST("/calculate", r.handler.Calculate)
	}

	if r.tiers != nil {
		rg.GET("/tiers", r.tiers.GetActiveTiers)
		rg.PUT("/tiers", r.tiers.UpdateTiers)
		rg.GET("/tiers/history", r.tiers.ListTiers)
		rg.PUT("/tiers/:id", r.tiers.UpdateTierConfig)
	}

	if r.products != nil {
		rg.GET("/products/:id", r.products.GetProduct)
		rg.PUT("/products/:id", r.products.UpsertProduct)
	}
}
