package services

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/shopspring/decimal"
)

// MileageService defines mileage tracking and valuation operations.
type MileageService interface {
	CreateEntry(ctx context.Context, userID string, req dto.CreateMileageEntryRequest) (*domain.MileageEntry, error)
	ListEntries(ctx context.Context, userID string, filter portsrepo.MileageFilter) ([]domain.MileageEntry, error)

	// RateFor resolves the per-mile rate for a user and year through the
	// fallback chain: user+year, global+year, most recent user rate, most
	// recent global rate, configured default.
	RateFor(ctx context.Context, userID string, year int) (decimal.Decimal, error)

	// TotalDollars values a set of entries, resolving each entry's rate by
	// its own date's year. Reimbursed entries contribute zero.
	TotalDollars(ctx context.Context, userID string, entries []domain.MileageEntry) (decimal.Decimal, error)

	// SaveRate upserts the per-mile rate for a year, user-scoped or
	// global.
	SaveRate(ctx context.Context, userID string, req dto.SaveMileageRateRequest) (*domain.MileageRate, error)
}
