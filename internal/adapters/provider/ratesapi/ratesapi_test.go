package ratesapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crmworks/bizmanage_backend/internal/adapters/provider/ratesapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchLatestRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"base": "usd",
			"timestamp": 1767225600,
			"rates": {"eur": 0.92, "INR": 83.10}
		}`))
	}))
	defer server.Close()

	client := ratesapi.New(server.URL, "test-key", 5*time.Second)

	rates, err := client.FetchLatestRates(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, "USD", rates.BaseCurrencyCode)
	assert.Len(t, rates.Rates, 2)
	// Codes are normalized to uppercase at the boundary.
	assert.True(t, rates.Rates["EUR"].Equal(decimal.NewFromFloat(0.92)))
	assert.True(t, rates.Rates["INR"].Equal(decimal.NewFromFloat(83.10)))
	assert.Equal(t, time.Unix(1767225600, 0), rates.FetchedAt)
}

func TestClient_FetchLatestRates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := ratesapi.New(server.URL, "test-key", 5*time.Second)

	rates, err := client.FetchLatestRates(context.Background(), "USD")

	require.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "statusCode: 502")
}

func TestClient_FetchLatestRates_EmptyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base": "USD", "rates": {}}`))
	}))
	defer server.Close()

	client := ratesapi.New(server.URL, "test-key", 5*time.Second)

	rates, err := client.FetchLatestRates(context.Background(), "USD")

	require.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "no rates")
}

func TestClient_FetchCurrencies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/currencies", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"currencies": [
				{"code": "usd", "symbol": "$", "name": "US Dollar"},
				{"code": "jpy", "symbol": "¥", "name": "Japanese Yen"}
			]
		}`))
	}))
	defer server.Close()

	client := ratesapi.New(server.URL, "test-key", 5*time.Second)

	currencies, err := client.FetchCurrencies(context.Background())

	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, "USD", currencies[0].Code)
	assert.Equal(t, "$", currencies[0].Symbol)
	assert.Equal(t, "JPY", currencies[1].Code)
}
