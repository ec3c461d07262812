package dto

import (
	"time"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest carries the conversion query parameters. Amount is bound as
// a string so malformed numbers surface as a validation error with the raw
// input, not a binding failure.
type ConvertRequest struct {
	Amount           string `form:"amount" binding:"required"`
	FromCurrencyCode string `form:"from_currency" binding:"required,currencycode"`
	ToCurrencyCode   string `form:"to_currency" binding:"required,currencycode"`
}

// ConversionResponse is the wire shape of a conversion result.
type ConversionResponse struct {
	OriginalAmount   decimal.Decimal `json:"original_amount"`
	FromCurrencyCode string          `json:"from_currency"`
	ToCurrencyCode   string          `json:"to_currency"`
	ConvertedAmount  decimal.Decimal `json:"converted_amount"`
	FormattedAmount  string          `json:"formatted_amount"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	RateSource       string          `json:"rate_source"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// ToConversionResponse converts a domain.ConversionResult to its wire shape.
func ToConversionResponse(r *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:   r.OriginalAmount,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		ConvertedAmount:  r.ConvertedAmount,
		FormattedAmount:  r.FormattedAmount,
		ExchangeRate:     r.ExchangeRate,
		RateSource:       string(r.RateSource),
		LastUpdated:      r.RateLastUpdatedAt,
	}
}
