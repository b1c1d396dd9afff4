package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/i18n"
	"github.com/guttosm/tier-pricing-service/internal/middleware"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/guttosm/tier-pricing-service/internal/service"
)

var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	resp.Details = nil
	errorResponsePool.Put(resp)
}

// ResponseBuilder writes the standard success and error envelopes. Envelopes
// come from a sync.Pool; gin serializes synchronously so they are returned
// right after writing.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now().UTC()

	b.c.JSON(statusCode, resp)

	putSuccessResponse(resp)
}

// SuccessOK writes a 200 response.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes a 201 response.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error writes a translated error and records err for the error middleware.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithDetails(statusCode, messageKey, err, nil)
}

// ErrorWithDetails is Error with extra details in the body.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, err error, details map[string]string) {
	locale := i18n.GetLocale(b.c)

	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, locale)
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now().UTC()

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)

	putErrorResponse(resp)
}

// FromError maps a service error onto a status and message. validationKey is
// used for invalid input so the message names what was being validated.
func (b *ResponseBuilder) FromError(err error, validationKey string) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		b.ErrorWithDetails(http.StatusBadRequest, validationKey, err,
			map[string]string{"field": verr.Field, "reason": verr.Message})
		return
	}
	var lerr *model.QuantityLimitError
	if errors.As(err, &lerr) {
		details := map[string]string{"field": "quantity", "reason": lerr.Error(), "limit": strconv.Itoa(lerr.Limit)}
		if lerr.Key != "" {
			details["key"] = lerr.Key
		}
		b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidationCart, err, details)
		return
	}
	if cerr, ok := asConfigurationError(err); ok {
		b.ErrorWithDetails(http.StatusBadRequest, validationKey, err,
			map[string]string{"field": cerr.Field, "reason": cerr.Message})
		return
	}

	status, key := errorStatus(err)
	b.Error(status, key, err)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, i18n.ErrKeyProductNotFound
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, i18n.ErrKeyTierConfigNotFound
	case errors.Is(err, service.ErrParentRequired):
		return http.StatusBadRequest, i18n.ErrKeyValidationProduct
	case errors.Is(err, service.ErrCatalogNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyStorageNotAvailable
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

func asConfigurationError(err error) (*model.ConfigurationError, bool) {
	var cerr *model.ConfigurationError
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}

// Validator is implemented by requests that check themselves after binding.
type Validator interface {
	Validate() error
}

// BuildRequest binds the JSON body into a T. Bind failures are returned as is;
// validation failures are returned as the request's own error type.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, &bindError{err: err}
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// bindError marks a body that could not be decoded.
type bindError struct {
	err error
}

func (e *bindError) Error() string { return e.err.Error() }
func (e *bindError) Unwrap() error { return e.err }

func isBindError(err error) bool {
	var be *bindError
	return errors.As(err, &be)
}
