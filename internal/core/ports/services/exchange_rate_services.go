package services

import (
	"context"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	"github.com/crmworks/bizmanage_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the stored exchange rate for a currency pair.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all stored exchange rates.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// ConvertAmount converts an amount between two currencies using the
	// current rate set, deriving a cross-rate via the company base currency
	// when no direct rate exists.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*domain.ConversionResult, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// RefreshRates pulls the latest rates from the online provider and
	// overwrites the stored set. A failed fetch leaves stored rates intact.
	RefreshRates(ctx context.Context, triggeredByUserID string) (*domain.RateRefreshSummary, error)

	// SetManualRate stores a user-entered rate override for a currency pair.
	SetManualRate(ctx context.Context, req dto.SetManualRateRequest, editorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
