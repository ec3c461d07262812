package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portsrepo "github.com/crmworks/bizmanage_backend/internal/core/ports/repositories"
	"github.com/crmworks/bizmanage_backend/internal/dto"
)

// CompanySetupService manages the company currency configuration: the base
// accounting currency and the set of additional tracked currencies.
type CompanySetupService struct {
	companyRepo  portsrepo.CompanySetupRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewCompanySetupService creates a new CompanySetupService.
func NewCompanySetupService(companyRepo portsrepo.CompanySetupRepositoryFacade, currencyRepo portsrepo.CurrencyReader) *CompanySetupService {
	return &CompanySetupService{
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
}

// GetCompanyConfig retrieves the company currency configuration.
func (s *CompanySetupService) GetCompanyConfig(ctx context.Context) (*domain.CompanyCurrencyConfig, error) {
	config, err := s.companyRepo.GetCompanyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get company config in service: %w", err)
	}
	return config, nil
}

// UpdateCompanyConfig replaces the stored configuration with the submitted
// one in a single write. The base currency is silently dropped from the
// additional set, so toggling the base currency is a no-op. Unknown currency
// codes are rejected and nothing is persisted.
func (s *CompanySetupService) UpdateCompanyConfig(ctx context.Context, req dto.UpdateCompanyConfigRequest, editorUserID string) (*domain.CompanyCurrencyConfig, error) {
	baseCode := strings.ToUpper(req.BaseCurrencyCode)
	if err := s.ensureCurrencyExists(ctx, baseCode); err != nil {
		return nil, err
	}

	additional := make([]string, 0, len(req.AdditionalCurrencies))
	for _, code := range req.AdditionalCurrencies {
		code = strings.ToUpper(code)
		if err := s.ensureCurrencyExists(ctx, code); err != nil {
			return nil, err
		}
		additional = append(additional, code)
	}

	now := time.Now()
	config := domain.CompanyCurrencyConfig{
		BaseCurrencyCode:     baseCode,
		AdditionalCurrencies: additional,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     editorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: editorUserID,
		},
	}
	config.Normalize()

	if err := s.companyRepo.SaveCompanyConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save company config in service: %w", err)
	}

	return &config, nil
}

func (s *CompanySetupService) ensureCurrencyExists(ctx context.Context, code string) error {
	_, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}
	return nil
}
