package domain

import (
	"time"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ConversionResult is the ephemeral outcome of a single currency conversion.
// It is returned to the caller and never persisted.
type ConversionResult struct {
	OriginalAmount    decimal.Decimal `json:"originalAmount"`
	FromCurrencyCode  string          `json:"fromCurrencyCode"`
	ToCurrencyCode    string          `json:"toCurrencyCode"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	FormattedAmount   string          `json:"formattedAmount"` // Display form at the target currency's precision
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	RateSource        RateSource      `json:"rateSource"`
	RateLastUpdatedAt time.Time       `json:"rateLastUpdatedAt"`
}

// RateSet is an in-memory snapshot of exchange rates keyed by currency pair.
// Conversion over a RateSet is a pure computation with no side effects.
type RateSet struct {
	rates map[currencyPair]ExchangeRate
}

type currencyPair struct {
	from string
	to   string
}

// NewRateSet builds a RateSet from a slice of rates. Later entries for the
// same pair overwrite earlier ones.
func NewRateSet(rates []ExchangeRate) RateSet {
	m := make(map[currencyPair]ExchangeRate, len(rates))
	for _, r := range rates {
		m[currencyPair{from: r.FromCurrencyCode, to: r.ToCurrencyCode}] = r
	}
	return RateSet{rates: m}
}

// Lookup returns the stored rate for the exact (from, to) pair.
func (s RateSet) Lookup(from, to string) (ExchangeRate, bool) {
	r, ok := s.rates[currencyPair{from: from, to: to}]
	return r, ok
}

// Len returns the number of stored rates.
func (s RateSet) Len() int {
	return len(s.rates)
}

// Resolve finds the effective exchange rate from one currency to another.
// Resolution order: identity for same-currency pairs, then the direct stored
// rate, then a cross-rate derived via the base currency:
//
//	rate(from->to) = rate(base->to) / rate(base->from)
//
// where the leg base->base is implicitly 1. Returns ErrRateUnavailable when
// neither a direct rate nor both cross legs exist.
func (s RateSet) Resolve(from, to, base string) (ExchangeRate, error) {
	if from == to {
		return ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			Source:           RateSourceIdentity,
		}, nil
	}

	if direct, ok := s.Lookup(from, to); ok {
		return direct, nil
	}

	legFrom, okFrom := s.baseLeg(base, from)
	legTo, okTo := s.baseLeg(base, to)
	if !okFrom || !okTo || legFrom.Rate.IsZero() {
		return ExchangeRate{}, apperrors.ErrRateUnavailable
	}

	derived := ExchangeRate{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             legTo.Rate.Div(legFrom.Rate),
		Source:           crossSource(legFrom.Source, legTo.Source),
	}
	derived.LastUpdatedAt = olderOf(legFrom.LastUpdatedAt, legTo.LastUpdatedAt)
	return derived, nil
}

// Convert computes the conversion of amount from one currency to another,
// rounding the converted value to the given decimal precision.
func (s RateSet) Convert(amount decimal.Decimal, from, to, base string, precision int) (ConversionResult, error) {
	rate, err := s.Resolve(from, to, base)
	if err != nil {
		return ConversionResult{}, err
	}
	converted := amount.Mul(rate.Rate).Round(int32(precision))
	if rate.Source == RateSourceIdentity {
		// Same-currency conversion returns the amount untouched.
		converted = amount
	}
	return ConversionResult{
		OriginalAmount:    amount,
		FromCurrencyCode:  from,
		ToCurrencyCode:    to,
		ConvertedAmount:   converted,
		ExchangeRate:      rate.Rate,
		RateSource:        rate.Source,
		RateLastUpdatedAt: rate.LastUpdatedAt,
	}, nil
}

// baseLeg resolves the base->code leg for cross-rate derivation. The
// base->base leg is the implicit identity rate.
func (s RateSet) baseLeg(base, code string) (ExchangeRate, bool) {
	if code == base {
		return ExchangeRate{
			FromCurrencyCode: base,
			ToCurrencyCode:   base,
			Rate:             decimal.NewFromInt(1),
			Source:           RateSourceIdentity,
		}, true
	}
	return s.Lookup(base, code)
}

// crossSource labels a derived rate: legs of one source keep it, mixed legs
// (or identity legs) fall back to the non-identity one.
func crossSource(a, b RateSource) RateSource {
	if a == RateSourceIdentity {
		return b
	}
	if b == RateSourceIdentity || a == b {
		return a
	}
	return RateSourceSystem
}

func olderOf(a, b time.Time) time.Time {
	if b.IsZero() {
		return a
	}
	if a.IsZero() || b.Before(a) {
		return b
	}
	return a
}
