package ratesapi

// latestRatesResponse is the provider payload for GET /v1/latest.
type latestRatesResponse struct {
	Base      string             `json:"base"`
	Timestamp int64              `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
}

// currenciesResponse is the provider payload for GET /v1/currencies.
type currenciesResponse struct {
	Currencies []providerCurrency `json:"currencies"`
}

type providerCurrency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
