package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portsprov "github.com/crmworks/bizmanage_backend/internal/core/ports/providers"
	portsrepo "github.com/crmworks/bizmanage_backend/internal/core/ports/repositories"
	portssvc "github.com/crmworks/bizmanage_backend/internal/core/ports/services"
	"github.com/crmworks/bizmanage_backend/internal/dto"
	"github.com/crmworks/bizmanage_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for exchange rates: listing,
// manual overrides, online refresh and currency conversion.
type ExchangeRateService struct {
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	companySetup    portssvc.CompanySetupReaderSvc
	rateProvider    portsprov.RateProvider

	// Overlapping refreshes race against each other; the most recent request
	// wins. Each refresh takes a sequence number before fetching and a
	// result is only applied if no newer refresh has been applied since.
	refreshSeq  atomic.Uint64
	applyMu     sync.Mutex
	lastApplied uint64
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyService portssvc.CurrencyReaderSvc,
	companySetup portssvc.CompanySetupReaderSvc,
	rateProvider portsprov.RateProvider,
) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		companySetup:    companySetup,
		rateProvider:    rateProvider,
	}
}

// SetManualRate stores a user-entered rate override. The override keeps
// source=manual and supersedes any online value until the next refresh.
func (s *ExchangeRateService) SetManualRate(ctx context.Context, req dto.SetManualRateRequest, editorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	baseCode := strings.ToUpper(req.BaseCurrencyCode)
	targetCode := strings.ToUpper(req.TargetCurrencyCode)
	if baseCode == targetCode {
		return nil, fmt.Errorf("%w: base and target currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Check if currencies exist
	if _, err := s.currencyService.GetCurrencyByCode(ctx, baseCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: base currency code '%s' not found", apperrors.ErrValidation, baseCode)
		}
		return nil, fmt.Errorf("failed to validate base currency '%s': %w", baseCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, targetCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: target currency code '%s' not found", apperrors.ErrValidation, targetCode)
		}
		return nil, fmt.Errorf("failed to validate target currency '%s': %w", targetCode, err)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: baseCode,
		ToCurrencyCode:   targetCode,
		Rate:             req.Rate,
		Source:           domain.RateSourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     editorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: editorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save manual exchange rate in service: %w", err)
	}

	return &rate, nil
}

// RefreshRates fetches the latest rates for the company base currency from
// the online provider and overwrites the stored set with source=online.
// A provider failure leaves the stored rates untouched; a refresh that loses
// the race against a newer one is discarded with ErrRefreshSuperseded.
func (s *ExchangeRateService) RefreshRates(ctx context.Context, triggeredByUserID string) (*domain.RateRefreshSummary, error) {
	seq := s.refreshSeq.Add(1)

	config, err := s.companySetup.GetCompanyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company config for rate refresh: %w", err)
	}

	known, err := s.currencyService.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies for rate refresh: %w", err)
	}
	knownCodes := make(map[string]struct{}, len(known))
	for _, c := range known {
		knownCodes[c.CurrencyCode] = struct{}{}
	}

	fetched, err := s.rateProvider.FetchLatestRates(ctx, config.BaseCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}

	now := time.Now()
	rates := make([]domain.ExchangeRate, 0, len(fetched.Rates))
	for code, value := range fetched.Rates {
		code = strings.ToUpper(code)
		if code == config.BaseCurrencyCode {
			continue
		}
		if _, ok := knownCodes[code]; !ok {
			continue
		}
		if value.LessThanOrEqual(decimal.Zero) {
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: config.BaseCurrencyCode,
			ToCurrencyCode:   code,
			Rate:             value,
			Source:           domain.RateSourceOnline,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     triggeredByUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: triggeredByUserID,
			},
		})
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	if seq <= s.lastApplied {
		return nil, apperrors.ErrRefreshSuperseded
	}

	count, err := s.rateRepo.UpsertRates(ctx, rates)
	if err != nil {
		return nil, fmt.Errorf("failed to store refreshed rates: %w", err)
	}
	s.lastApplied = seq

	return &domain.RateRefreshSummary{
		UpdatedCount:     count,
		BaseCurrencyCode: config.BaseCurrencyCode,
		RefreshedAt:      now,
	}, nil
}

// ConvertAmount converts an amount using the current rate set. Missing
// direct rates fall back to a cross-rate via the company base currency.
func (s *ExchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*domain.ConversionResult, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	config, err := s.companySetup.GetCompanyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company config for conversion: %w", err)
	}

	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates for conversion: %w", err)
	}

	precision := s.precisionOf(ctx, toCode)
	result, err := domain.NewRateSet(rates).Convert(amount, fromCode, toCode, config.BaseCurrencyCode, precision)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			return nil, fmt.Errorf("%w: no rate from %s to %s and no %s leg", apperrors.ErrRateUnavailable, fromCode, toCode, config.BaseCurrencyCode)
		}
		return nil, err
	}
	result.FormattedAmount = utils.FormatWithPrecision(result.ConvertedAmount, precision)
	if result.RateSource == domain.RateSourceIdentity {
		result.RateLastUpdatedAt = time.Now()
		result.FormattedAmount = result.ConvertedAmount.String()
	}
	return &result, nil
}

// GetExchangeRate retrieves the stored exchange rate for a currency pair.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates retrieves all stored exchange rates.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// precisionOf looks up the decimal precision for a currency, falling back to
// the default when the currency is not in the catalogue.
func (s *ExchangeRateService) precisionOf(ctx context.Context, code string) int {
	currency, err := s.currencyService.GetCurrencyByCode(ctx, code)
	if err != nil || currency == nil {
		return domain.DefaultCurrencyPrecision
	}
	return currency.Precision
}
