package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/i18n"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/guttosm/tier-pricing-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseBuilder_FromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "validation error",
			err:        &dto.ValidationError{Field: "items[0].quantity", Message: "must not be negative"},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidRequest,
			wantField:  "items[0].quantity",
		},
		{
			name:       "configuration error",
			err:        &model.ConfigurationError{Field: "tiers", Message: "duplicate threshold 3"},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidRequest,
			wantField:  "tiers",
		},
		{
			name:       "wrapped unknown product",
			err:        fmt.Errorf("line %q: %w", "a", service.ErrProductNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "missing tier configuration",
			err:        repository.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "open circuit",
			err:        circuitbreaker.ErrCircuitOpen,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeServiceUnavailable,
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrCodeTimeout,
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", func(c *gin.Context) {
				NewResponseBuilder(c).FromError(tt.err, i18n.ErrKeyValidationCart)
			})

			w, env := doJSON(t, router, http.MethodGet, "/", nil)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, env.Error)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, env.Details["field"])
			}
		})
	}
}

func TestResponseBuilder_Locale(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		NewResponseBuilder(c).FromError(service.ErrProductNotFound, i18n.ErrKeyValidationCart)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "Produto não encontrado")
}

type sampleRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r *sampleRequest) Validate() error {
	if r.Name == "bad" {
		return &dto.ValidationError{Field: "name", Message: "is bad"}
	}
	return nil
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantBind bool
	}{
		{name: "valid", body: `{"name":"ok"}`},
		{name: "missing field", body: `{}`, wantErr: true, wantBind: true},
		{name: "malformed", body: `{`, wantErr: true, wantBind: true},
		{name: "fails validation", body: `{"name":"bad"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			req, err := BuildRequest[sampleRequest](c)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "ok", req.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantBind, isBindError(err))
		})
	}
}
