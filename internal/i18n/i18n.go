// Package i18n translates user-facing messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator holds messages per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has a message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, falling back to DefaultLocale
// and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the first supported language from Accept-Language, in the order the
// client lists them. Region subtags are ignored ("pt-BR" means "pt").
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	t := GetTranslator()
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ := strings.Cut(tag, "-")
		lang = strings.ToLower(lang)
		if t.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

func defaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:      "Invalid request",
			ErrKeyInvalidRequestBody:  "Invalid request body",
			ErrKeyInternalError:       "An unexpected error occurred",
			ErrKeyAPIKeyRequired:      "API key is required",
			ErrKeyInvalidAPIKey:       "Invalid API key",
			ErrKeyNotFound:            "Not found",
			ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
			ErrKeyConflict:            "Conflict",
			ErrKeyTimeout:             "Request timed out",
			ErrKeyServiceUnavailable:  "Service temporarily unavailable",
			ErrKeyValidationCart:      "Invalid cart line",
			ErrKeyValidationTiers:     "Invalid tier configuration",
			ErrKeyValidationProduct:   "Invalid product",
			ErrKeyProductNotFound:     "Product not found",
			ErrKeyCatalogUnavailable:  "Product catalog is not available; send base_price and category_ids with every line",
			ErrKeyTierConfigNotFound:  "No tier configuration stored",
			ErrKeyStorageNotAvailable: "Storage is not configured",

			SuccessKeyCartPriced:   "Cart priced",
			SuccessKeyTiersUpdated: "Tier configuration updated",
		},
		"pt": {
			ErrKeyInvalidRequest:      "Requisição inválida",
			ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
			ErrKeyInternalError:       "Ocorreu um erro inesperado",
			ErrKeyAPIKeyRequired:      "Chave de API é obrigatória",
			ErrKeyInvalidAPIKey:       "Chave de API inválida",
			ErrKeyNotFound:            "Não encontrado",
			ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:            "Conflito",
			ErrKeyTimeout:             "Tempo da requisição esgotado",
			ErrKeyServiceUnavailable:  "Serviço temporariamente indisponível",
			ErrKeyValidationCart:      "Item do carrinho inválido",
			ErrKeyValidationTiers:     "Configuração de faixas inválida",
			ErrKeyValidationProduct:   "Produto inválido",
			ErrKeyProductNotFound:     "Produto não encontrado",
			ErrKeyCatalogUnavailable:  "Catálogo indisponível; envie base_price e category_ids em cada item",
			ErrKeyTierConfigNotFound:  "Nenhuma configuração de faixas armazenada",
			ErrKeyStorageNotAvailable: "Armazenamento não configurado",

			SuccessKeyCartPriced:   "Carrinho precificado",
			SuccessKeyTiersUpdated: "Configuração de faixas atualizada",
		},
		"nl": {
			ErrKeyInvalidRequest:      "Ongeldig verzoek",
			ErrKeyInvalidRequestBody:  "Ongeldige aanvraag body",
			ErrKeyInternalError:       "Er is een onverwachte fout opgetreden",
			ErrKeyAPIKeyRequired:      "API-sleutel is vereist",
			ErrKeyInvalidAPIKey:       "Ongeldige API-sleutel",
			ErrKeyNotFound:            "Niet gevonden",
			ErrKeyRateLimitExceeded:   "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:            "Conflict",
			ErrKeyTimeout:             "Verzoek verlopen",
			ErrKeyServiceUnavailable:  "Dienst tijdelijk niet beschikbaar",
			ErrKeyValidationCart:      "Ongeldige winkelwagenregel",
			ErrKeyValidationTiers:     "Ongeldige staffelconfiguratie",
			ErrKeyValidationProduct:   "Ongeldig product",
			ErrKeyProductNotFound:     "Product niet gevonden",
			ErrKeyCatalogUnavailable:  "Productcatalogus niet beschikbaar; stuur base_price en category_ids mee met elke regel",
			ErrKeyTierConfigNotFound:  "Geen staffelconfiguratie opgeslagen",
			ErrKeyStorageNotAvailable: "Opslag is niet geconfigureerd",

			SuccessKeyCartPriced:   "Winkelwagen geprijsd",
			SuccessKeyTiersUpdated: "Staffelconfiguratie bijgewerkt",
		},
	}
}
