package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/i18n"
	"github.com/guttosm/tier-pricing-service/internal/service"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// GetProduct handles GET /api/products/:id requests.
//
// @Summary      Get catalog product
// @Description  Returns a product; variable products include their variations
// @Tags         Products
// @Produce      json
// @Param        id path int true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProductResponse} "Product"
// @Failure      400 {object} dto.ErrorResponse "Invalid id"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := productID(c, builder)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationProduct)
		return
	}

	resp := dto.ProductResponse{Product: *product}
	if product.Type == model.ProductTypeVariable {
		variations, err := h.products.Variations(c.Request.Context(), id)
		if err != nil {
			builder.FromError(err, i18n.ErrKeyValidationProduct)
			return
		}
		resp.Variations = variations
	}
	builder.SuccessOK(resp)
}

// UpsertProduct handles PUT /api/products/:id requests.
//
// @Summary      Create or replace catalog product
// @Description  Stores a product. Variations need an existing parent_id and are eligible through the parent's categories.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id path int true "Product id"
// @Param        request body dto.UpsertProductRequest true "Product"
// @Success      200 {object} dto.SuccessResponse{data=model.Product} "Stored product"
// @Failure      400 {object} dto.ErrorResponse "Invalid product"
// @Failure      404 {object} dto.ErrorResponse "Parent product not found"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/products/{id} [put]
func (h *ProductHandler) UpsertProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := productID(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequest[dto.UpsertProductRequest](c)
	if err != nil {
		if isBindError(err) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		} else {
			builder.FromError(err, i18n.ErrKeyValidationProduct)
		}
		return
	}

	product, err := h.products.Upsert(c.Request.Context(), req.Product(id))
	if err != nil {
		builder.FromError(err, i18n.ErrKeyValidationProduct)
		return
	}

	audit(c, model.ActionUpsertItem, "", "Catalog product stored", map[string]interface{}{
		"product_id": product.ID,
		"type":       string(product.Type),
		"price":      product.Price.String(),
	})
	builder.SuccessOK(product)
}

func productID(c *gin.Context, builder *ResponseBuilder) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		builder.FromError(&dto.ValidationError{Field: "id", Message: "must be a positive integer"}, i18n.ErrKeyValidationProduct)
		return 0, false
	}
	return id, true
}
