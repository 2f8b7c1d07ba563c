package services

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/shopspring/decimal"
)

// ContractorService defines contractor management and 1099-NEC
// preparation operations.
type ContractorService interface {
	CreateContractor(ctx context.Context, userID string, req dto.CreateContractorRequest) (*domain.Contractor, error)
	ListContractors(ctx context.Context, userID string, activeOnly bool) ([]domain.Contractor, error)

	// Box1Total sums the contractor's expense transactions for the tax
	// year, sign-normalized to the positive compensation amount.
	Box1Total(ctx context.Context, userID, contractorID string, year int) (decimal.Decimal, error)

	// Summary1099 computes the full box summary, including the gated
	// Box 7 state income, for the active company profile.
	Summary1099(ctx context.Context, userID, contractorID string, year int) (*domain.Form1099Summary, error)
}

// CompanyService resolves the active company profile once per request so it
// can be passed explicitly instead of re-queried inside call stacks.
type CompanyService interface {
	ActiveProfile(ctx context.Context) (*domain.CompanyProfile, error)

	// SaveProfile creates the profile on first save and replaces the
	// active one afterwards.
	SaveProfile(ctx context.Context, req dto.SaveCompanyProfileRequest) (*domain.CompanyProfile, error)
}
