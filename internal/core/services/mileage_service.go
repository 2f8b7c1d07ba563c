package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// mileageService implements portssvc.MileageService.
type mileageService struct {
	BaseService
	mileageRepo portsrepo.MileageRepository
	defaultRate decimal.Decimal
}

// NewMileageService creates a new mileage service. defaultRate is the
// configured last-resort per-mile rate when no rate rows exist at all.
func NewMileageService(mileageRepo portsrepo.MileageRepository, defaultRate decimal.Decimal) portssvc.MileageService {
	return &mileageService{
		mileageRepo: mileageRepo,
		defaultRate: defaultRate,
	}
}

var _ portssvc.MileageService = (*mileageService)(nil)

// CreateEntry records one trip. Either a precomputed total or a begin/end
// odometer pair must be supplied.
func (s *mileageService) CreateEntry(ctx context.Context, userID string, req dto.CreateMileageEntryRequest) (*domain.MileageEntry, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	hasTotal := req.Total != nil
	hasOdometer := req.Begin != nil && req.End != nil
	if !hasTotal && !hasOdometer {
		return nil, fmt.Errorf("%w: either total miles or begin and end odometer readings are required", apperrors.ErrValidation)
	}
	if hasTotal && req.Total.IsNegative() {
		return nil, fmt.Errorf("%w: total miles cannot be negative", apperrors.ErrValidation)
	}
	if hasOdometer && req.End.LessThan(*req.Begin) {
		return nil, fmt.Errorf("%w: end odometer reading cannot be before begin", apperrors.ErrValidation)
	}

	now := time.Now()
	entry := domain.MileageEntry{
		MileageID:     uuid.NewString(),
		UserID:        userID,
		Date:          date,
		HasTotal:      hasTotal,
		MileageType:   domain.MileageType(req.MileageType),
		ClientID:      req.ClientID,
		EventID:       req.EventID,
		VehicleID:     req.VehicleID,
		InvoiceNumber: req.InvoiceNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if hasTotal {
		entry.Total = *req.Total
	}
	if hasOdometer {
		entry.Begin = *req.Begin
		entry.End = *req.End
	}

	if err := s.mileageRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mileage entry: %w", err)
	}
	return &entry, nil
}

func (s *mileageService) ListEntries(ctx context.Context, userID string, filter portsrepo.MileageFilter) ([]domain.MileageEntry, error) {
	entries, err := s.mileageRepo.ListEntries(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list mileage entries: %w", err)
	}
	if entries == nil {
		return []domain.MileageEntry{}, nil
	}
	return entries, nil
}

// RateFor resolves the per-mile rate through the fallback chain: the
// user's rate for the year, the global rate for the year, the user's most
// recent rate, the most recent global rate, then the configured default.
func (s *mileageService) RateFor(ctx context.Context, userID string, year int) (decimal.Decimal, error) {
	lookups := []func() (*domain.MileageRate, error){
		func() (*domain.MileageRate, error) { return s.mileageRepo.FindRate(ctx, userID, year) },
		func() (*domain.MileageRate, error) { return s.mileageRepo.FindGlobalRate(ctx, year) },
		func() (*domain.MileageRate, error) { return s.mileageRepo.FindLatestRateForUser(ctx, userID) },
		func() (*domain.MileageRate, error) { return s.mileageRepo.FindLatestGlobalRate(ctx) },
	}

	for _, lookup := range lookups {
		rate, err := lookup()
		if err == nil {
			return rate.Rate, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("failed to resolve mileage rate: %w", err)
		}
	}
	return s.defaultRate, nil
}

// TotalDollars values entries at each entry's own year's rate, so a report
// spanning a rate change stays correct. Reimbursed entries count zero.
func (s *mileageService) TotalDollars(ctx context.Context, userID string, entries []domain.MileageEntry) (decimal.Decimal, error) {
	rateByYear := make(map[int]decimal.Decimal)
	total := domain.ZeroMoney()
	for _, entry := range entries {
		if entry.MileageType != domain.MileageTaxable {
			continue
		}
		year := entry.Date.Year()
		rate, ok := rateByYear[year]
		if !ok {
			var err error
			rate, err = s.RateFor(ctx, userID, year)
			if err != nil {
				return decimal.Zero, err
			}
			rateByYear[year] = rate
		}
		total = domain.AddMoney(total, domain.MulMoney(entry.Miles(), rate))
	}
	return total, nil
}

// SaveRate upserts the per-mile rate for a year. A global rate carries an
// empty user ID and serves every user without a rate of their own.
func (s *mileageService) SaveRate(ctx context.Context, userID string, req dto.SaveMileageRateRequest) (*domain.MileageRate, error) {
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate cannot be negative", apperrors.ErrValidation)
	}

	rate := domain.MileageRate{
		RateID: uuid.NewString(),
		UserID: userID,
		Year:   req.Year,
		Rate:   req.Rate,
	}
	if req.Global {
		rate.UserID = ""
	}

	if err := s.mileageRepo.SaveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save mileage rate: %w", err)
	}
	return &rate, nil
}
