package domain

// DefaultCurrencyPrecision is the decimal precision assumed for currencies
// that do not declare one.
const DefaultCurrencyPrecision = 2

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Decimal places (0 for JPY/KRW, 2 for most)
	AuditFields
}
