package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where an exchange rate value came from.
type RateSource string

const (
	// RateSourceOnline marks rates pulled from the external rate provider.
	RateSourceOnline RateSource = "online"
	// RateSourceManual marks rates entered by a user; they override online
	// values until the next refresh.
	RateSourceManual RateSource = "manual"
	// RateSourceSystem marks rates seeded by migrations or fixtures.
	RateSourceSystem RateSource = "system"
	// RateSourceIdentity marks the implicit 1:1 rate for same-currency conversions.
	RateSourceIdentity RateSource = "identity"
)

// ExchangeRate stores the conversion rate between two currencies.
// There is at most one rate per (from, to) pair; updates overwrite in place.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	AuditFields
}

// LastUpdated reports when the rate value itself was last written.
func (r ExchangeRate) LastUpdated() time.Time {
	return r.LastUpdatedAt
}

// RateRefreshSummary describes the outcome of one online rate refresh.
type RateRefreshSummary struct {
	UpdatedCount     int       `json:"updatedCount"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	RefreshedAt      time.Time `json:"refreshedAt"`
}
