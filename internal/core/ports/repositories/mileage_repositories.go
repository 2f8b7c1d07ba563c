package repositories

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// MileageFilter narrows mileage queries. Year 0 means all years; an empty
// InvoiceNumber means no invoice filter.
type MileageFilter struct {
	Year          int
	InvoiceNumber string
	MileageType   domain.MileageType
}

// MileageRepository defines persistence operations for mileage entries and
// the year-scoped rate table.
type MileageRepository interface {
	SaveEntry(ctx context.Context, entry domain.MileageEntry) error
	ListEntries(ctx context.Context, userID string, filter MileageFilter) ([]domain.MileageEntry, error)

	// The four rate lookups backing the fallback chain. Each returns
	// apperrors.ErrNotFound when no row matches.
	FindRate(ctx context.Context, userID string, year int) (*domain.MileageRate, error)
	FindGlobalRate(ctx context.Context, year int) (*domain.MileageRate, error)
	FindLatestRateForUser(ctx context.Context, userID string) (*domain.MileageRate, error)
	FindLatestGlobalRate(ctx context.Context) (*domain.MileageRate, error)

	SaveRate(ctx context.Context, rate domain.MileageRate) error
}
