package mapping

import (
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	"github.com/crmworks/bizmanage_backend/internal/models"
)

// ToDomainCompanyConfig converts a model CompanySettings to the domain config.
func ToDomainCompanyConfig(m models.CompanySettings) domain.CompanyCurrencyConfig {
	return domain.CompanyCurrencyConfig{
		BaseCurrencyCode:     m.BaseCurrencyCode,
		AdditionalCurrencies: m.AdditionalCurrencies,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCompanySettings converts the domain config to a model CompanySettings.
func ToModelCompanySettings(d domain.CompanyCurrencyConfig, settingsID string) models.CompanySettings {
	return models.CompanySettings{
		SettingsID:           settingsID,
		BaseCurrencyCode:     d.BaseCurrencyCode,
		AdditionalCurrencies: d.AdditionalCurrencies,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}
