package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/format"
	"github.com/guttosm/tier-pricing-service/internal/i18n"
	"github.com/guttosm/tier-pricing-service/internal/logger"
	"github.com/guttosm/tier-pricing-service/internal/middleware"
	"github.com/guttosm/tier-pricing-service/internal/service"
)

// rulesCache holds the active tier rules for a short TTL so that pricing does
// not hit MongoDB on every request.
type rulesCache struct {
	rules     atomic.Pointer[model.Rules]
	expiresAt atomic.Int64
	mu        sync.Mutex
	ttl       time.Duration
}

func newRulesCache(ttl time.Duration) *rulesCache {
	return &rulesCache{ttl: ttl}
}

func (c *rulesCache) get() (model.Rules, bool) {
	if time.Now().UnixNano() >= c.expiresAt.Load() {
		return model.Rules{}, false
	}
	if r := c.rules.Load(); r != nil {
		return *r, true
	}
	return model.Rules{}, false
}

func (c *rulesCache) set(rules model.Rules) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules.Store(&rules)
	c.expiresAt.Store(time.Now().Add(c.ttl).UnixNano())
}

func (c *rulesCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt.Store(0)
}

// Pricer prices raw cart lines against explicit rules.
type Pricer interface {
	PriceWithRules(ctx context.Context, lines []model.CartLine, rules model.Rules) (model.PricedCart, error)
	// Rules returns the configured default rules.
	Rules() model.Rules
}

// boundPricer fixes the rules a session prices with.
type boundPricer struct {
	pricer Pricer
	rules  model.Rules
}

func (p boundPricer) Price(ctx context.Context, lines []model.CartLine) (model.PricedCart, error) {
	return p.pricer.PriceWithRules(ctx, lines, p.rules)
}

// Handler serves the pricing endpoints.
type Handler struct {
	pricer      Pricer
	tierConfigs service.TierConfigService
	formatter   *format.Formatter
	guard       service.GuardPolicy
	rulesCache  *rulesCache
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithRulesCacheTTL sets how long the stored tier configuration is reused.
func WithRulesCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.rulesCache = newRulesCache(ttl)
	}
}

// WithTierConfigService makes pricing follow the stored tier configuration.
func WithTierConfigService(svc service.TierConfigService) HandlerOption {
	return func(h *Handler) {
		h.tierConfigs = svc
	}
}

// WithFormatter sets the price formatter used for display fields.
func WithFormatter(f *format.Formatter) HandlerOption {
	return func(h *Handler) {
		if f != nil {
			h.formatter = f
		}
	}
}

// WithGuardPolicy sets the session re-entry guard.
func WithGuardPolicy(g service.GuardPolicy) HandlerOption {
	return func(h *Handler) {
		h.guard = g
	}
}

// NewHandler creates a Handler. Without a tier configuration service it prices
// with pricer.Rules().
func NewHandler(pricer Pricer, opts ...HandlerOption) *Handler {
	defaultFormatter, _ := format.New(format.DefaultOptions())
	h := &Handler{
		pricer:     pricer,
		formatter:  defaultFormatter,
		guard:      service.GuardOnce,
		rulesCache: newRulesCache(30 * time.Second),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// activeRules returns the stored configuration when there is one and the
// configured defaults otherwise. Storage errors fall back to the defaults
// without caching them.
func (h *Handler) activeRules(ctx context.Context) model.Rules {
	if rules, ok := h.rulesCache.get(); ok {
		return rules
	}
	if h.tierConfigs == nil {
		return h.pricer.Rules()
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	rules, ok, err := h.tierConfigs.ActiveRules(ctx)
	if err != nil {
		log := logger.Component("http")
		log.Warn().Err(err).Msg("Active tier configuration unavailable, using defaults")
		return h.pricer.Rules()
	}
	if !ok {
		rules = h.pricer.Rules()
	}

	h.rulesCache.set(rules)
	return rules
}

// InvalidateRulesCache forces the next request to reload the tier configuration.
func (h *Handler) InvalidateRulesCache() {
	h.rulesCache.invalidate()
}

// PriceCart handles POST /api/cart/price requests.
//
// @Summary      Price a cart
// @Description  Runs the cart through the pricing hooks. Eligible items are pooled, the highest tier their total quantity reaches is applied to that many units in cart order, and each line gets its average unit price plus a breakdown. Lines without base_price or category_ids are completed from the catalog; variations use their own price and their parent's categories. Supports idempotency via Idempotency-Key header.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PriceCartRequest true "Cart lines"
// @Success      200 {object} dto.SuccessResponse{data=dto.PricedCartResponse} "Priced cart"
// @Failure      400 {object} dto.ErrorResponse "Invalid cart"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      404 {object} dto.ErrorResponse "Unknown product"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/cart/price [post]
func (h *Handler) PriceCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.PriceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.FromError(err, i18n.ErrKeyValidationCart)
		return
	}

	rules := h.activeRules(c.Request.Context())
	resp, err := h.runSession(c.Request.Context(), boundPricer{pricer: h.pricer, rules: rules}, req.Lines())
	if err != nil {
		auditError(c, model.ActionPriceCart, "Cart pricing failed", err, map[string]interface{}{"lines": len(req.Items)})
		builder.FromError(err, i18n.ErrKeyValidationCart)
		return
	}

	audit(c, model.ActionPriceCart, "", "Cart priced", cartAuditFields(resp))
	builder.SuccessOK(resp)
}

// Calculate handles POST /api/calculate requests.
//
// @Summary      Calculate tier prices
// @Description  Stateless calculation over inline cart lines. Every line carries its base_price and category_ids; no catalog lookup is made. Optional rules replace the active configuration for this call only.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CalculateRequest true "Inline cart and optional rules"
// @Success      200 {object} dto.SuccessResponse{data=dto.PricedCartResponse} "Priced cart"
// @Failure      400 {object} dto.ErrorResponse "Invalid cart or rules"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security     ApiKeyAuth
// @Router       /api/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		key := i18n.ErrKeyValidationCart
		if _, ok := asConfigurationError(err); ok {
			key = i18n.ErrKeyValidationTiers
		}
		builder.FromError(err, key)
		return
	}

	var rules model.Rules
	if req.Rules != nil {
		custom, err := req.Rules.ToRules()
		if err != nil {
			builder.FromError(err, i18n.ErrKeyValidationTiers)
			return
		}
		rules = custom
	} else {
		rules = h.activeRules(c.Request.Context())
	}

	resp, err := h.runSession(c.Request.Context(), boundPricer{pricer: h.pricer, rules: rules}, req.Lines())
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationCart)
		return
	}

	fields := cartAuditFields(resp)
	fields["custom_rules"] = req.Rules != nil
	audit(c, model.ActionCalculate, "", "Tier calculation requested", fields)
	builder.SuccessOK(resp)
}

// runSession drives the cart hooks in host order: pre-pricing once, then the
// price and display hooks for every line. Each request is its own cart load,
// so the session guard never skips work here.
func (h *Handler) runSession(ctx context.Context, pricer service.Pricer, lines []model.CartLine) (dto.PricedCartResponse, error) {
	session := service.NewSession(pricer, h.formatter, h.guard)

	result, err := session.PrePricing(ctx, lines)
	if err != nil {
		return dto.PricedCartResponse{}, err
	}
	return toPricedCartResponse(result, session, h.formatter), nil
}

func cartAuditFields(resp dto.PricedCartResponse) map[string]interface{} {
	fields := map[string]interface{}{
		"lines":                   len(resp.Items),
		"total_eligible_quantity": resp.TotalEligibleQuantity,
		"quantity_to_discount":    resp.QuantityToDiscount,
		"savings":                 resp.Savings.String(),
	}
	if resp.MatchedTier != nil {
		fields["matched_threshold"] = resp.MatchedTier.Threshold
	}
	return fields
}

// audit records an audit entry when the router provided a logging service.
func audit(c *gin.Context, action, actor, message string, fields map[string]interface{}) {
	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, action, actor, message, fields)
	}
}

func auditError(c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	if ls := loggingService(c); ls != nil {
		middleware.AuditLogError(ls, c, action, "", message, err, fields)
	}
}

func loggingService(c *gin.Context) service.LoggingService {
	if v, exists := c.Get(loggingServiceKey); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}
