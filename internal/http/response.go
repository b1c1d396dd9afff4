package http

import (
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/format"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/guttosm/tier-pricing-service/internal/service"
)

// toPricedCartResponse reads item prices and display strings back through the
// hooks, as a shop would after pre-pricing.
func toPricedCartResponse(result model.PricedCart, hooks service.CartHooks, f *format.Formatter) dto.PricedCartResponse {
	resp := dto.PricedCartResponse{
		Items:                 make([]dto.PricedItemResponse, len(result.Items)),
		TotalEligibleQuantity: result.TotalEligibleQuantity,
		QuantityToDiscount:    result.QuantityToDiscount,
		FullPricedRemainder:   result.FullPricedRemainder,
		Subtotal:              result.Subtotal,
		Total:                 result.Total,
		Savings:               result.Savings,
		SubtotalDisplay:       f.Format(result.Subtotal),
		TotalDisplay:          f.Format(result.Total),
	}
	if result.MatchedTier != nil {
		resp.MatchedTier = &dto.TierResponse{
			Threshold: result.MatchedTier.Threshold,
			Amount:    result.MatchedTier.Amount,
		}
	}

	for i, it := range result.Items {
		price := hooks.ItemPrice(it.Key, it.BasePrice)
		resp.Items[i] = dto.PricedItemResponse{
			Key:             it.Key,
			ProductID:       it.ProductID,
			ParentID:        it.ParentID,
			Quantity:        it.Quantity,
			BasePrice:       it.BasePrice,
			Eligible:        it.Eligible,
			Adjusted:        it.Adjusted,
			Price:           price,
			LineTotal:       it.LineTotal(),
			DiscountedUnits: it.DiscountedUnits,
			AdjustedPrices:  it.AdjustedPrices,
			Breakdown:       format.Breakdown(it),
			PriceDisplay:    hooks.ItemPriceDisplay(it.Key, f.Format(price)),
		}
	}
	return resp
}

func toTierResponses(tiers []model.Tier) []dto.TierResponse {
	out := make([]dto.TierResponse, len(tiers))
	for i, t := range tiers {
		out[i] = dto.TierResponse{Threshold: t.Threshold, Amount: t.Amount}
	}
	return out
}

// defaultTierConfigResponse describes rules that are not stored.
func defaultTierConfigResponse(rules model.Rules) dto.TierConfigResponse {
	return dto.TierConfigResponse{
		Source:              dto.TierSourceDefault,
		Active:              true,
		Tiers:               toTierResponses(rules.Tiers),
		Mode:                string(rules.Mode),
		CategoryIDs:         rules.CategoryIDs,
		NegativePricePolicy: string(rules.NegativePrice),
	}
}

// storedTierConfigResponse describes a stored configuration. Documents that no
// longer parse are rendered with their raw tiers left out.
func storedTierConfigResponse(cfg *repository.TierConfig) dto.TierConfigResponse {
	created, updated := cfg.CreatedAt, cfg.UpdatedAt
	resp := dto.TierConfigResponse{
		ID:                  cfg.ID.Hex(),
		Source:              dto.TierSourceStored,
		Version:             cfg.Version,
		Active:              cfg.Active,
		Mode:                cfg.Mode,
		CategoryIDs:         cfg.CategoryIDs,
		NegativePricePolicy: cfg.NegativePrice,
		CreatedAt:           &created,
		UpdatedAt:           &updated,
		CreatedBy:           cfg.CreatedBy,
	}
	if rules, err := cfg.Rules(); err == nil {
		rules = rules.Normalized()
		resp.Tiers = toTierResponses(rules.Tiers)
		resp.NegativePricePolicy = string(rules.NegativePrice)
	}
	return resp
}
