package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/i18n"
	"github.com/guttosm/tier-pricing-service/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxHistoryLimit = 100

// TierConfigHandler serves the tier configuration endpoints.
type TierConfigHandler struct {
	tierConfigs  service.TierConfigService
	defaults     func() model.Rules
	rulesChanged func()
}

// NewTierConfigHandler creates a TierConfigHandler. defaults supplies the rules
// reported while nothing is stored; rulesChanged runs after every write.
func NewTierConfigHandler(tierConfigs service.TierConfigService, defaults func() model.Rules, rulesChanged func()) *TierConfigHandler {
	if rulesChanged == nil {
		rulesChanged = func() {}
	}
	return &TierConfigHandler{tierConfigs: tierConfigs, defaults: defaults, rulesChanged: rulesChanged}
}

// GetActiveTiers handles GET /api/tiers requests.
//
// @Summary      Get active tier configuration
// @Description  Returns the stored active configuration, or the configured defaults with source "default" when nothing is stored
// @Tags         Tiers
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.TierConfigResponse} "Active configuration"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/tiers [get]
func (h *TierConfigHandler) GetActiveTiers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cfg, err := h.tierConfigs.GetActive(c.Request.Context())
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationTiers)
		return
	}
	if cfg == nil {
		builder.SuccessOK(defaultTierConfigResponse(h.defaults()))
		return
	}
	builder.SuccessOK(storedTierConfigResponse(cfg))
}

// UpdateTiers handles PUT /api/tiers requests.
//
// @Summary      Replace tier configuration
// @Description  Stores a new active configuration with the next version number and deactivates the previous one. Thresholds must be unique and positive, amounts positive, and percentages at most 100. Supports idempotency via Idempotency-Key header.
// @Tags         Tiers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.UpdateTiersRequest true "Tier configuration"
// @Success      201 {object} dto.SuccessResponse{data=dto.TierConfigResponse} "Stored configuration"
// @Failure      400 {object} dto.ErrorResponse "Invalid configuration"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/tiers [put]
func (h *TierConfigHandler) UpdateTiers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, rules, ok := h.bindRules(c, builder)
	if !ok {
		return
	}

	cfg, err := h.tierConfigs.Create(c.Request.Context(), rules, req.CreatedBy)
	if err != nil {
		auditError(c, model.ActionUpdateTiers, "Tier configuration update failed", err, nil)
		builder.FromError(err, i18n.ErrKeyValidationTiers)
		return
	}
	h.rulesChanged()

	audit(c, model.ActionUpdateTiers, req.CreatedBy, "Tier configuration updated", map[string]interface{}{
		"version": cfg.Version,
		"tiers":   len(rules.Tiers),
		"mode":    string(rules.Mode),
	})
	builder.SuccessCreated(storedTierConfigResponse(cfg))
}

// UpdateTierConfig handles PUT /api/tiers/:id requests.
//
// @Summary      Edit a stored tier configuration
// @Description  Changes an existing configuration in place without creating a new version
// @Tags         Tiers
// @Accept       json
// @Produce      json
// @Param        id path string true "Configuration id"
// @Param        request body dto.UpdateTiersRequest true "Tier configuration"
// @Success      200 {object} dto.SuccessResponse{data=dto.TierConfigResponse} "Updated configuration"
// @Failure      400 {object} dto.ErrorResponse "Invalid configuration or id"
// @Failure      404 {object} dto.ErrorResponse "Configuration not found"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/tiers/{id} [put]
func (h *TierConfigHandler) UpdateTierConfig(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.FromError(&dto.ValidationError{Field: "id", Message: "must be a 24 character hex id"}, i18n.ErrKeyValidationTiers)
		return
	}

	req, rules, ok := h.bindRules(c, builder)
	if !ok {
		return
	}

	cfg, err := h.tierConfigs.Update(c.Request.Context(), id, rules, req.CreatedBy)
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationTiers)
		return
	}
	h.rulesChanged()

	audit(c, model.ActionUpdateTiers, req.CreatedBy, "Tier configuration edited", map[string]interface{}{
		"id":      id.Hex(),
		"version": cfg.Version,
	})
	builder.SuccessOK(storedTierConfigResponse(cfg))
}

func (h *TierConfigHandler) bindRules(c *gin.Context, builder *ResponseBuilder) (*dto.UpdateTiersRequest, model.Rules, bool) {
	req, err := BuildRequest[dto.UpdateTiersRequest](c)
	if err != nil {
		if isBindError(err) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		} else {
			builder.FromError(err, i18n.ErrKeyValidationTiers)
		}
		return nil, model.Rules{}, false
	}

	rules, err := req.ToRules()
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationTiers)
		return nil, model.Rules{}, false
	}
	return req, rules, true
}

// ListTiers handles GET /api/tiers/history requests.
//
// @Summary      List tier configuration history
// @Description  Returns stored configurations, newest version first
// @Tags         Tiers
// @Produce      json
// @Param        limit query int false "Maximum number of versions (1-100)"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.TierConfigResponse} "Configuration history"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/tiers/history [get]
func (h *TierConfigHandler) ListTiers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxHistoryLimit)
		}
	}

	configs, err := h.tierConfigs.List(c.Request.Context(), limit)
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationTiers)
		return
	}

	out := make([]dto.TierConfigResponse, len(configs))
	for i := range configs {
		out[i] = storedTierConfigResponse(&configs[i])
	}
	builder.SuccessOK(out)
}
