package domain

import "slices"

// CompanyCurrencyConfig is the company-level currency setup: the base
// accounting currency plus the set of additional currencies the company
// tracks. The base currency is never a member of AdditionalCurrencies.
type CompanyCurrencyConfig struct {
	BaseCurrencyCode     string   `json:"baseCurrencyCode"`
	AdditionalCurrencies []string `json:"additionalCurrencies"`
	AuditFields
}

// Normalize enforces the base-not-in-additional invariant and removes
// duplicates while preserving order. Toggling the base currency into the
// additional set is therefore a no-op.
func (c *CompanyCurrencyConfig) Normalize() {
	seen := make(map[string]struct{}, len(c.AdditionalCurrencies))
	out := c.AdditionalCurrencies[:0]
	for _, code := range c.AdditionalCurrencies {
		if code == c.BaseCurrencyCode {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	c.AdditionalCurrencies = out
}

// Tracks reports whether the company tracks the given currency, either as
// the base currency or as an additional one.
func (c CompanyCurrencyConfig) Tracks(code string) bool {
	if code == c.BaseCurrencyCode {
		return true
	}
	return slices.Contains(c.AdditionalCurrencies, code)
}
