package dto

import (
	"time"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
)

// UpdateCompanyConfigRequest carries the full currency configuration. The
// additional set is replaced wholesale on save; there is no partial update.
type UpdateCompanyConfigRequest struct {
	BaseCurrencyCode     string   `json:"base_currency" binding:"required,currencycode"`
	AdditionalCurrencies []string `json:"additional_currencies" binding:"dive,currencycode"`
}

// CompanyConfigResponse is the wire shape of the company currency setup.
type CompanyConfigResponse struct {
	BaseCurrencyCode     string    `json:"base_currency"`
	AdditionalCurrencies []string  `json:"additional_currencies"`
	LastUpdated          time.Time `json:"last_updated"`
}

// ToCompanyConfigResponse converts the domain config to its wire shape.
func ToCompanyConfigResponse(c *domain.CompanyCurrencyConfig) CompanyConfigResponse {
	additional := c.AdditionalCurrencies
	if additional == nil {
		additional = []string{}
	}
	return CompanyConfigResponse{
		BaseCurrencyCode:     c.BaseCurrencyCode,
		AdditionalCurrencies: additional,
		LastUpdated:          c.LastUpdatedAt,
	}
}
