package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/domain/dto"
	"github.com/guttosm/tier-pricing-service/internal/i18n"
)

const (
	// APIKeyHeader is the header checked for an API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter checked when the header is absent.
	APIKeyQuery = "api_key"
)

// APIKeyAuth rejects requests without a valid API key. An empty key set
// disables the check. The accepted key is recorded as the request actor in
// masked form so audit entries never store the secret.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		msgKey := ""
		switch {
		case key == "":
			msgKey = i18n.ErrKeyAPIKeyRequired
		case !validKeys[key]:
			msgKey = i18n.ErrKeyInvalidAPIKey
		}
		if msgKey != "" {
			locale := i18n.GetLocale(c)
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(msgKey, locale)).
				WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		c.Set(string(ActorKey), MaskKey(key))
		c.Next()
	}
}

// MaskKey keeps the last four characters of key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "api-key:****"
	}
	return "api-key:****" + key[len(key)-4:]
}
