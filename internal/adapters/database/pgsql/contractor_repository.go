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

type PgxContractorRepository struct {
	pool *pgxpool.Pool
}

// NewPgxContractorRepository creates a new repository for contractor data.
func NewPgxContractorRepository(pool *pgxpool.Pool) portsrepo.ContractorRepository {
	return &PgxContractorRepository{pool: pool}
}

func (r *PgxContractorRepository) SaveContractor(ctx context.Context, contractor domain.Contractor) error {
	query := `
		INSERT INTO contractors (contractor_id, user_id, first_name, last_name, business_name,
			email, state, tin_last4, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9,
			$10, $11, $12, $13)
		ON CONFLICT (contractor_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			business_name = EXCLUDED.business_name,
			email = EXCLUDED.email,
			state = EXCLUDED.state,
			tin_last4 = EXCLUDED.tin_last4,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		contractor.ContractorID, contractor.UserID, contractor.FirstName, contractor.LastName,
		contractor.BusinessName, contractor.Email, contractor.State, contractor.TIN, contractor.IsActive,
		contractor.CreatedAt, contractor.CreatedBy, contractor.LastUpdatedAt, contractor.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contractor %s: %w", contractor.ContractorID, err)
	}
	return nil
}

const contractorSelect = `
	SELECT contractor_id, user_id, first_name, last_name, COALESCE(business_name, ''),
		COALESCE(email, ''), COALESCE(state, ''), COALESCE(tin_last4, ''), is_active,
		created_at, created_by, last_updated_at, last_updated_by
	FROM contractors`

func scanContractor(row pgx.Row) (domain.Contractor, error) {
	var c domain.Contractor
	err := row.Scan(
		&c.ContractorID, &c.UserID, &c.FirstName, &c.LastName, &c.BusinessName,
		&c.Email, &c.State, &c.TIN, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	return c, err
}

func (r *PgxContractorRepository) FindContractorByID(ctx context.Context, userID, contractorID string) (*domain.Contractor, error) {
	query := contractorSelect + ` WHERE user_id = $1 AND contractor_id = $2;`
	c, err := scanContractor(r.pool.QueryRow(ctx, query, userID, contractorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contractor %s: %w", contractorID, err)
	}
	return &c, nil
}

func (r *PgxContractorRepository) ListContractors(ctx context.Context, userID string, activeOnly bool) ([]domain.Contractor, error) {
	query := contractorSelect + ` WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY last_name, first_name;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}
	defer rows.Close()

	contractors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contractor, error) {
		return scanContractor(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contractors: %w", err)
	}
	return contractors, nil
}
