package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portsrepo "github.com/crmworks/bizmanage_backend/internal/core/ports/repositories"
	"github.com/crmworks/bizmanage_backend/internal/models"
	"github.com/crmworks/bizmanage_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Rates are unique per (from, to) pair; writes overwrite the existing row
// and keep its created audit fields.
const upsertRateQuery = `
	INSERT INTO exchange_rates (
		exchange_rate_id, from_currency_code, to_currency_code, rate, source,
		created_at, created_by, last_updated_at, last_updated_by
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
		rate = EXCLUDED.rate,
		source = EXCLUDED.source,
		last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by;
`

// PgxExchangeRateRepository implements the exchange rate repository using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts or overwrites the rate for a single currency pair.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCurrency := strings.ToUpper(rate.FromCurrencyCode)
	toCurrency := strings.ToUpper(rate.ToCurrencyCode)

	if fromCurrency == toCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.FromCurrencyCode = fromCurrency
	modelRate.ToCurrencyCode = toCurrency

	_, err := r.Pool.Exec(ctx, upsertRateQuery,
		modelRate.ExchangeRateID, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode,
		modelRate.Rate, modelRate.Source, modelRate.CreatedAt, modelRate.CreatedBy,
		modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// UpsertRates writes a batch of rates in one transaction. Either every rate
// lands or none do, so a failed refresh never leaves a half-written set.
func (r *PgxExchangeRateRepository) UpsertRates(ctx context.Context, rates []domain.ExchangeRate) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, rate := range rates {
		modelRate := mapping.ToModelExchangeRate(rate)
		modelRate.FromCurrencyCode = strings.ToUpper(modelRate.FromCurrencyCode)
		modelRate.ToCurrencyCode = strings.ToUpper(modelRate.ToCurrencyCode)

		_, err = tx.Exec(ctx, upsertRateQuery,
			modelRate.ExchangeRateID, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode,
			modelRate.Rate, modelRate.Source, modelRate.CreatedAt, modelRate.CreatedBy,
			modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return 0, apperrors.NewAppError(500, "failed to upsert exchange rates", err)
		}
		written++
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return written, nil
}

// FindExchangeRate retrieves the stored rate for a currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, source,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(
		&modelRate.ExchangeRateID, &modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode,
		&modelRate.Rate, &modelRate.Source, &modelRate.CreatedAt,
		&modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + fromCurrency + " to " + toCurrency)
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListExchangeRates retrieves all stored exchange rates.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, source,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		ORDER BY from_currency_code, to_currency_code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var modelRates []models.ExchangeRate
	for rows.Next() {
		var modelRate models.ExchangeRate
		err := rows.Scan(
			&modelRate.ExchangeRateID, &modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode,
			&modelRate.Rate, &modelRate.Source, &modelRate.CreatedAt,
			&modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		modelRates = append(modelRates, modelRate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}
