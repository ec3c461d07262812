package services

import (
	portsprov "github.com/crmworks/bizmanage_backend/internal/core/ports/providers"
	portsrepo "github.com/crmworks/bizmanage_backend/internal/core/ports/repositories"
	portssvc "github.com/crmworks/bizmanage_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateProvider portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo, rateProvider)
	container.CompanySetup = NewCompanySetupService(repos.CompanySetupRepo, repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		container.Currency,
		container.CompanySetup,
		rateProvider,
	)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.CompanySetupSvcFacade = (*CompanySetupService)(nil)
)
