package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies.
// Unique per (from, to) pair; rate updates overwrite the existing row.
// Note: Rate uses a precise decimal type (github.com/shopspring/decimal).
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"` // online | manual | system
	AuditFields
}
