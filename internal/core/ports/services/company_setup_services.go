package services

import (
	"context"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	"github.com/crmworks/bizmanage_backend/internal/dto"
)

// CompanySetupReaderSvc defines read operations for the company currency setup
type CompanySetupReaderSvc interface {
	// GetCompanyConfig retrieves the company currency configuration.
	GetCompanyConfig(ctx context.Context) (*domain.CompanyCurrencyConfig, error)
}

// CompanySetupWriterSvc defines write operations for the company currency setup
type CompanySetupWriterSvc interface {
	// UpdateCompanyConfig replaces the company currency configuration with
	// the submitted one. The base currency is never kept in the additional
	// set, and a failed save leaves the stored configuration unchanged.
	UpdateCompanyConfig(ctx context.Context, req dto.UpdateCompanyConfigRequest, editorUserID string) (*domain.CompanyCurrencyConfig, error)
}

// CompanySetupSvcFacade combines all company setup service interfaces
type CompanySetupSvcFacade interface {
	CompanySetupReaderSvc
	CompanySetupWriterSvc
}
