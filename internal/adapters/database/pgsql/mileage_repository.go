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

type PgxMileageRepository struct {
	pool *pgxpool.Pool
}

// NewPgxMileageRepository creates a new repository for mileage entries and
// the year-scoped rate table.
func NewPgxMileageRepository(pool *pgxpool.Pool) portsrepo.MileageRepository {
	return &PgxMileageRepository{pool: pool}
}

func (r *PgxMileageRepository) SaveEntry(ctx context.Context, entry domain.MileageEntry) error {
	query := `
		INSERT INTO mileage_entries (mileage_id, user_id, date, begin_odometer, end_odometer,
			total_miles, has_total, mileage_type, client_id, event_id, vehicle_id, invoice_number,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''), $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.MileageID, entry.UserID, entry.Date, entry.Begin, entry.End,
		entry.Total, entry.HasTotal, entry.MileageType,
		entry.ClientID, entry.EventID, entry.VehicleID, entry.InvoiceNumber,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save mileage entry %s: %w", entry.MileageID, err)
	}
	return nil
}

func (r *PgxMileageRepository) ListEntries(ctx context.Context, userID string, filter portsrepo.MileageFilter) ([]domain.MileageEntry, error) {
	query := `
		SELECT mileage_id, user_id, date, begin_odometer, end_odometer,
			total_miles, has_total, mileage_type, COALESCE(client_id, ''), COALESCE(event_id, ''),
			COALESCE(vehicle_id, ''), COALESCE(invoice_number, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM mileage_entries
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM date) = $%d", len(args))
	}
	if filter.InvoiceNumber != "" {
		args = append(args, filter.InvoiceNumber)
		query += fmt.Sprintf(" AND invoice_number = $%d", len(args))
	}
	if filter.MileageType != "" {
		args = append(args, filter.MileageType)
		query += fmt.Sprintf(" AND mileage_type = $%d", len(args))
	}
	query += " ORDER BY date, created_at;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mileage entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MileageEntry, error) {
		var e domain.MileageEntry
		err := row.Scan(
			&e.MileageID, &e.UserID, &e.Date, &e.Begin, &e.End,
			&e.Total, &e.HasTotal, &e.MileageType, &e.ClientID, &e.EventID,
			&e.VehicleID, &e.InvoiceNumber,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan mileage entries: %w", err)
	}
	return entries, nil
}

const mileageRateSelect = `
	SELECT rate_id, COALESCE(user_id, ''), year, rate
	FROM mileage_rates`

func scanRate(row pgx.Row) (*domain.MileageRate, error) {
	var rate domain.MileageRate
	err := row.Scan(&rate.RateID, &rate.UserID, &rate.Year, &rate.Rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan mileage rate: %w", err)
	}
	return &rate, nil
}

func (r *PgxMileageRepository) FindRate(ctx context.Context, userID string, year int) (*domain.MileageRate, error) {
	query := mileageRateSelect + ` WHERE user_id = $1 AND year = $2;`
	return scanRate(r.pool.QueryRow(ctx, query, userID, year))
}

func (r *PgxMileageRepository) FindGlobalRate(ctx context.Context, year int) (*domain.MileageRate, error) {
	query := mileageRateSelect + ` WHERE user_id IS NULL AND year = $1;`
	return scanRate(r.pool.QueryRow(ctx, query, year))
}

func (r *PgxMileageRepository) FindLatestRateForUser(ctx context.Context, userID string) (*domain.MileageRate, error) {
	query := mileageRateSelect + ` WHERE user_id = $1 ORDER BY year DESC LIMIT 1;`
	return scanRate(r.pool.QueryRow(ctx, query, userID))
}

func (r *PgxMileageRepository) FindLatestGlobalRate(ctx context.Context) (*domain.MileageRate, error) {
	query := mileageRateSelect + ` WHERE user_id IS NULL ORDER BY year DESC LIMIT 1;`
	return scanRate(r.pool.QueryRow(ctx, query))
}

// SaveRate updates the rate for the (user, year) pair or inserts a new
// row. Update-then-insert keeps it simple against the two partial unique
// indexes covering user and global rows.
func (r *PgxMileageRepository) SaveRate(ctx context.Context, rate domain.MileageRate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE mileage_rates SET rate = $1
		 WHERE year = $2 AND user_id IS NOT DISTINCT FROM NULLIF($3, '');`,
		rate.Rate, rate.Year, rate.UserID)
	if err != nil {
		return fmt.Errorf("failed to update mileage rate for year %d: %w", rate.Year, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO mileage_rates (rate_id, user_id, year, rate)
		 VALUES ($1, NULLIF($2, ''), $3, $4);`,
		rate.RateID, rate.UserID, rate.Year, rate.Rate)
	if err != nil {
		return fmt.Errorf("failed to insert mileage rate for year %d: %w", rate.Year, err)
	}
	return nil
}
