package providers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderRates is the normalized shape of a provider rate response: all
// rates are expressed against the base currency. Provider payload variants
// are normalized into this struct at the adapter boundary, never inferred
// per call site.
type ProviderRates struct {
	BaseCurrencyCode string
	Rates            map[string]decimal.Decimal
	FetchedAt        time.Time
}

// ProviderCurrency describes a currency as reported by the provider.
type ProviderCurrency struct {
	Code   string
	Symbol string
	Name   string
}

// RateProvider is the outbound port to the external exchange-rate service.
type RateProvider interface {
	// FetchLatestRates returns the latest rates against the given base currency.
	FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*ProviderRates, error)

	// FetchCurrencies returns the currencies the provider supports.
	FetchCurrencies(ctx context.Context) ([]ProviderCurrency, error)
}
