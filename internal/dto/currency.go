package dto

import (
	"time"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"min=0,max=18"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Precision     int       `json:"precision"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// AvailableCurrencyResponse is the public shape for the available-currency
// listing consumed by the currency settings page.
type AvailableCurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		Precision:     curr.Precision,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to response DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}

// ToAvailableCurrencyResponse converts a domain.Currency to the public listing shape.
func ToAvailableCurrencyResponse(curr domain.Currency) AvailableCurrencyResponse {
	return AvailableCurrencyResponse{
		Code:   curr.CurrencyCode,
		Symbol: curr.Symbol,
		Name:   curr.Name,
	}
}

// ToListAvailableCurrencyResponse converts domain currencies to the public listing shape.
func ToListAvailableCurrencyResponse(currencies []domain.Currency) []AvailableCurrencyResponse {
	res := make([]AvailableCurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToAvailableCurrencyResponse(curr)
	}
	return res
}
