package pgsql

import (
	"context"
	"errors"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portsrepo "github.com/crmworks/bizmanage_backend/internal/core/ports/repositories"
	"github.com/crmworks/bizmanage_backend/internal/models"
	"github.com/crmworks/bizmanage_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultSettingsID keys the single company settings row.
const defaultSettingsID = "default"

// PgxCompanySetupRepository implements the company setup repository using pgxpool.
type PgxCompanySetupRepository struct {
	BaseRepository
}

// newPgxCompanySetupRepository creates a new PgxCompanySetupRepository.
func newPgxCompanySetupRepository(pool *pgxpool.Pool) portsrepo.CompanySetupRepositoryWithTx {
	return &PgxCompanySetupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanySetupRepositoryWithTx = (*PgxCompanySetupRepository)(nil)

// GetCompanyConfig retrieves the company currency configuration.
func (r *PgxCompanySetupRepository) GetCompanyConfig(ctx context.Context) (*domain.CompanyCurrencyConfig, error) {
	query := `
		SELECT settings_id, base_currency_code, additional_currencies,
			created_at, created_by, last_updated_at, last_updated_by
		FROM company_settings
		WHERE settings_id = $1;
	`

	var modelSettings models.CompanySettings
	err := r.Pool.QueryRow(ctx, query, defaultSettingsID).Scan(
		&modelSettings.SettingsID,
		&modelSettings.BaseCurrencyCode,
		&modelSettings.AdditionalCurrencies,
		&modelSettings.CreatedAt,
		&modelSettings.CreatedBy,
		&modelSettings.LastUpdatedAt,
		&modelSettings.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("company settings not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get company settings", err)
	}

	config := mapping.ToDomainCompanyConfig(modelSettings)
	return &config, nil
}

// SaveCompanyConfig replaces the stored configuration in a single upsert.
// The created audit fields of an existing row are preserved.
func (r *PgxCompanySetupRepository) SaveCompanyConfig(ctx context.Context, config domain.CompanyCurrencyConfig) error {
	modelSettings := mapping.ToModelCompanySettings(config, defaultSettingsID)

	query := `
		INSERT INTO company_settings (
			settings_id, base_currency_code, additional_currencies,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (settings_id) DO UPDATE SET
			base_currency_code = EXCLUDED.base_currency_code,
			additional_currencies = EXCLUDED.additional_currencies,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelSettings.SettingsID,
		modelSettings.BaseCurrencyCode,
		modelSettings.AdditionalCurrencies,
		modelSettings.CreatedAt,
		modelSettings.CreatedBy,
		modelSettings.LastUpdatedAt,
		modelSettings.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save company settings", err)
	}
	return nil
}
