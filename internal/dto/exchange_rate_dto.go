package dto

import (
	"time"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetManualRateRequest defines the body for a manual rate override.
// Rate positivity is validated at the service layer so a precise
// ValidationError can be surfaced instead of a generic binding failure.
type SetManualRateRequest struct {
	BaseCurrencyCode   string          `json:"base_currency" binding:"required,currencycode"`
	TargetCurrencyCode string          `json:"target_currency" binding:"required,currencycode"`
	Rate               decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the wire shape for a stored exchange rate.
type ExchangeRateResponse struct {
	BaseCurrencyCode   string          `json:"base_currency"`
	TargetCurrencyCode string          `json:"target_currency"`
	Rate               decimal.Decimal `json:"rate"`
	Source             string          `json:"source"`
	LastUpdated        time.Time       `json:"last_updated"`
}

// RefreshRatesResponse summarizes an online rate refresh.
type RefreshRatesResponse struct {
	UpdatedCount     int       `json:"updated_count"`
	BaseCurrencyCode string    `json:"base_currency"`
	RefreshedAt      time.Time `json:"refreshed_at"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its wire shape.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		BaseCurrencyCode:   rate.FromCurrencyCode,
		TargetCurrencyCode: rate.ToCurrencyCode,
		Rate:               rate.Rate,
		Source:             string(rate.Source),
		LastUpdated:        rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates to wire shapes.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ToRefreshRatesResponse converts a refresh summary to its wire shape.
func ToRefreshRatesResponse(s *domain.RateRefreshSummary) RefreshRatesResponse {
	return RefreshRatesResponse{
		UpdatedCount:     s.UpdatedCount,
		BaseCurrencyCode: s.BaseCurrencyCode,
		RefreshedAt:      s.RefreshedAt,
	}
}
