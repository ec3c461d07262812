package domain_test

import (
	"testing"

	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompanyCurrencyConfig_Normalize(t *testing.T) {
	config := domain.CompanyCurrencyConfig{
		BaseCurrencyCode:     "USD",
		AdditionalCurrencies: []string{"EUR", "USD", "INR", "EUR"},
	}

	config.Normalize()

	// Base is dropped, duplicates collapse, order of first appearance kept.
	assert.Equal(t, []string{"EUR", "INR"}, config.AdditionalCurrencies)
}

func TestCompanyCurrencyConfig_Tracks(t *testing.T) {
	config := domain.CompanyCurrencyConfig{
		BaseCurrencyCode:     "USD",
		AdditionalCurrencies: []string{"EUR", "INR"},
	}

	assert.True(t, config.Tracks("USD"))
	assert.True(t, config.Tracks("EUR"))
	assert.False(t, config.Tracks("GBP"))
}
