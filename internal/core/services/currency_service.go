package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portsprov "github.com/crmworks/bizmanage_backend/internal/core/ports/providers"
	portsrepo "github.com/crmworks/bizmanage_backend/internal/core/ports/repositories"
	"github.com/crmworks/bizmanage_backend/internal/dto"
)

// zeroDecimalCurrencies are currencies conventionally quoted without minor
// units. Used when the provider catalogue does not carry precision.
var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {}, "KRW": {}, "VND": {}, "CLP": {}, "ISK": {},
}

type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateProvider portsprov.RateProvider
}

func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, rateProvider portsprov.RateProvider) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		rateProvider: rateProvider,
	}
}

func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	// Basic validation already handled by DTO binding (required, len=3, uppercase)
	now := time.Now()

	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err := s.currencyRepo.SaveCurrency(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	return &currency, nil
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// SyncCurrencies pulls the provider's currency catalogue and upserts it into
// the local currencies table. Existing rows keep their created audit fields.
func (s *CurrencyService) SyncCurrencies(ctx context.Context, actorUserID string) (int, error) {
	fetched, err := s.rateProvider.FetchCurrencies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch currencies from provider: %w", err)
	}

	now := time.Now()
	saved := 0
	for _, pc := range fetched {
		if len(pc.Code) != 3 {
			continue
		}
		currency := domain.Currency{
			CurrencyCode: pc.Code,
			Symbol:       pc.Symbol,
			Name:         pc.Name,
			Precision:    precisionFor(pc.Code),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}
		if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
			return saved, fmt.Errorf("failed to save currency %s during sync: %w", pc.Code, err)
		}
		saved++
	}
	return saved, nil
}

func precisionFor(code string) int {
	if _, ok := zeroDecimalCurrencies[code]; ok {
		return 0
	}
	return domain.DefaultCurrencyPrecision
}
