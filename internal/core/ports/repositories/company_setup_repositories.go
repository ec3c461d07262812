package repositories

import (
	"context"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
)

// CompanySetupReader defines read operations for the company currency setup
type CompanySetupReader interface {
	// GetCompanyConfig retrieves the company currency configuration.
	GetCompanyConfig(ctx context.Context) (*domain.CompanyCurrencyConfig, error)
}

// CompanySetupWriter defines write operations for the company currency setup
type CompanySetupWriter interface {
	// SaveCompanyConfig persists the full configuration in one write. There
	// are no partial updates; a failed save leaves the stored value intact.
	SaveCompanyConfig(ctx context.Context, config domain.CompanyCurrencyConfig) error
}

// CompanySetupRepositoryFacade combines all company setup repository interfaces
type CompanySetupRepositoryFacade interface {
	CompanySetupReader
	CompanySetupWriter
}

// CompanySetupRepositoryWithTx extends CompanySetupRepositoryFacade with transaction capabilities
type CompanySetupRepositoryWithTx interface {
	CompanySetupRepositoryFacade
	TransactionManager
}
