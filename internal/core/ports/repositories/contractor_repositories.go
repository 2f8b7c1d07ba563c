package repositories

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// ContractorRepository defines persistence operations for 1099 payees.
type ContractorRepository interface {
	SaveContractor(ctx context.Context, contractor domain.Contractor) error
	FindContractorByID(ctx context.Context, userID, contractorID string) (*domain.Contractor, error)
	ListContractors(ctx context.Context, userID string, activeOnly bool) ([]domain.Contractor, error)
}

// CompanyRepository resolves the deployment's company profiles. The
// single-active-profile rule is a partial unique index in the storage
// layer.
type CompanyRepository interface {
	FindActiveProfile(ctx context.Context) (*domain.CompanyProfile, error)
	SaveProfile(ctx context.Context, profile domain.CompanyProfile) error
}
