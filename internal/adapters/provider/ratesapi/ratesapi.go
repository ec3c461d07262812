// Package ratesapi is the outbound client for the online exchange-rate
// provider. Provider payloads are normalized into the typed provider port
// structs here, at the boundary, so no call site ever inspects raw shapes.
package ratesapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	portsprov "github.com/crmworks/bizmanage_backend/internal/core/ports/providers"
	"github.com/shopspring/decimal"
	"resty.dev/v3"
)

// Client talks to an OpenExchange-style rates API over HTTP.
type Client struct {
	httpClient *resty.Client
}

// New creates a new rates API client. The base URL and API key come from
// configuration; they are never read from package-level state.
func New(apiURL, apiKey string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(apiURL).
		SetAuthScheme("Bearer").
		SetAuthToken(apiKey).
		SetTimeout(timeout)

	return &Client{
		httpClient: httpClient,
	}
}

var _ portsprov.RateProvider = (*Client)(nil)

// FetchLatestRates returns the latest rates quoted against the given base currency.
func (c *Client) FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*portsprov.ProviderRates, error) {
	var result latestRatesResponse

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/v1/latest?base=%s", baseCurrencyCode))
	if err != nil {
		return nil, fmt.Errorf("send latest rates request: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("could not fetch latest rates (statusCode: %d, body: %s)", response.StatusCode(), response.String())
	}
	if len(result.Rates) == 0 {
		return nil, fmt.Errorf("provider returned no rates for base %s", baseCurrencyCode)
	}

	rates := make(map[string]decimal.Decimal, len(result.Rates))
	for code, value := range result.Rates {
		rates[strings.ToUpper(code)] = decimal.NewFromFloat(value)
	}

	fetchedAt := time.Now()
	if result.Timestamp > 0 {
		fetchedAt = time.Unix(result.Timestamp, 0)
	}

	return &portsprov.ProviderRates{
		BaseCurrencyCode: strings.ToUpper(result.Base),
		Rates:            rates,
		FetchedAt:        fetchedAt,
	}, nil
}

// FetchCurrencies returns the currencies the provider supports.
func (c *Client) FetchCurrencies(ctx context.Context) ([]portsprov.ProviderCurrency, error) {
	var result currenciesResponse

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/v1/currencies")
	if err != nil {
		return nil, fmt.Errorf("send fetch currencies request: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("could not fetch currencies (statusCode: %d, body: %s)", response.StatusCode(), response.String())
	}

	output := make([]portsprov.ProviderCurrency, 0, len(result.Currencies))
	for _, currency := range result.Currencies {
		output = append(output, portsprov.ProviderCurrency{
			Code:   strings.ToUpper(currency.Code),
			Symbol: currency.Symbol,
			Name:   currency.Name,
		})
	}

	return output, nil
}
