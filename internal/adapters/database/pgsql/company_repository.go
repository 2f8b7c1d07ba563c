package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCompanyRepository creates a new repository for company profiles.
// A partial unique index on is_active enforces the single-active rule.
func NewPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{pool: pool}
}

func (r *PgxCompanyRepository) FindActiveProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	query := `
		SELECT profile_id, slug, legal_name, COALESCE(display_name, ''), COALESCE(state, ''),
			COALESCE(tax_id, ''), state_1099_reporting_enabled, is_active, default_net_days,
			created_at, created_by, last_updated_at, last_updated_by
		FROM company_profiles
		WHERE is_active;
	`
	var p domain.CompanyProfile
	err := r.pool.QueryRow(ctx, query).Scan(
		&p.ProfileID, &p.Slug, &p.LegalName, &p.DisplayName, &p.State,
		&p.TaxID, &p.State1099ReportingEnabled, &p.IsActive, &p.DefaultNetDays,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active company profile: %w", err)
	}
	return &p, nil
}

func (r *PgxCompanyRepository) SaveProfile(ctx context.Context, profile domain.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles (profile_id, slug, legal_name, display_name, state, tax_id,
			state_1099_reporting_enabled, is_active, default_net_days,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (profile_id) DO UPDATE SET
			slug = EXCLUDED.slug,
			legal_name = EXCLUDED.legal_name,
			display_name = EXCLUDED.display_name,
			state = EXCLUDED.state,
			tax_id = EXCLUDED.tax_id,
			state_1099_reporting_enabled = EXCLUDED.state_1099_reporting_enabled,
			is_active = EXCLUDED.is_active,
			default_net_days = EXCLUDED.default_net_days,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ProfileID, profile.Slug, profile.LegalName, profile.DisplayName, profile.State,
		profile.TaxID, profile.State1099ReportingEnabled, profile.IsActive, profile.DefaultNetDays,
		profile.CreatedAt, profile.CreatedBy, profile.LastUpdatedAt, profile.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save company profile %s: %w", profile.ProfileID, err)
	}
	return nil
}
