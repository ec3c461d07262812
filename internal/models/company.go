package models

// CompanySettings is the single-row company currency configuration.
type CompanySettings struct {
	SettingsID           string   `json:"settingsID"` // Primary Key, fixed for the single company
	BaseCurrencyCode     string   `json:"baseCurrencyCode"`
	AdditionalCurrencies []string `json:"additionalCurrencies"` // Never contains the base currency
	AuditFields
}
