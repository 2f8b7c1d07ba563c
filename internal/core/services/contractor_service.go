package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/flightdeck-io/droneledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// contractorService implements portssvc.ContractorService.
type contractorService struct {
	BaseService
	contractorRepo portsrepo.ContractorRepository
	txnRepo        portsrepo.TransactionRepository
	company        portssvc.CompanyService
}

// NewContractorService creates a new contractor service.
func NewContractorService(
	contractorRepo portsrepo.ContractorRepository,
	txnRepo portsrepo.TransactionRepository,
	company portssvc.CompanyService,
) portssvc.ContractorService {
	return &contractorService{
		contractorRepo: contractorRepo,
		txnRepo:        txnRepo,
		company:        company,
	}
}

var _ portssvc.ContractorService = (*contractorService)(nil)

// CreateContractor registers a 1099-eligible payee. A personal name or a
// business name is required so the 1099 form has a payee line.
func (s *contractorService) CreateContractor(ctx context.Context, userID string, req dto.CreateContractorRequest) (*domain.Contractor, error) {
	personalName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if personalName == "" && strings.TrimSpace(req.BusinessName) == "" {
		return nil, fmt.Errorf("%w: a first/last name or a business name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	contractor := domain.Contractor{
		ContractorID: uuid.NewString(),
		UserID:       userID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        strings.TrimSpace(req.Email),
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
		TIN:          req.TIN,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contractorRepo.SaveContractor(ctx, contractor); err != nil {
		return nil, fmt.Errorf("failed to save contractor: %w", err)
	}
	return &contractor, nil
}

func (s *contractorService) ListContractors(ctx context.Context, userID string, activeOnly bool) ([]domain.Contractor, error) {
	contractors, err := s.contractorRepo.ListContractors(ctx, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}
	if contractors == nil {
		return []domain.Contractor{}, nil
	}
	return contractors, nil
}

// Box1Total sums the contractor's expense transactions for the year.
// Expenses are stored as positive amounts but a correcting entry may go
// negative, so the sum is normalized to the absolute compensation figure
// the form expects.
func (s *contractorService) Box1Total(ctx context.Context, userID, contractorID string, year int) (decimal.Decimal, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{
		Year:         year,
		TransType:    domain.Expense,
		ContractorID: contractorID,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load contractor payments: %w", err)
	}

	total := domain.ZeroMoney()
	for _, t := range txns {
		total = domain.AddMoney(total, t.Amount)
	}
	return total.Abs(), nil
}

// Summary1099 computes the 1099-NEC box data for one contractor and year.
// Box 7 state income appears only when all three conditions hold: the
// active company profile has state reporting enabled, the contractor has a
// state on file, and that state participates in Box 7 reporting.
func (s *contractorService) Summary1099(ctx context.Context, userID, contractorID string, year int) (*domain.Form1099Summary, error) {
	contractor, err := s.contractorRepo.FindContractorByID(ctx, userID, contractorID)
	if err != nil {
		return nil, err
	}

	box1, err := s.Box1Total(ctx, userID, contractorID, year)
	if err != nil {
		return nil, err
	}

	summary := &domain.Form1099Summary{
		ContractorID:   contractor.ContractorID,
		ContractorName: contractor.DisplayName(),
		Year:           year,
		Box1Total:      box1,
		State:          contractor.NormalizedState(),
	}

	profile, err := s.company.ActiveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil &&
		profile.State1099ReportingEnabled &&
		summary.State != "" &&
		domain.StateRequiresBox7(summary.State) {
		summary.Box7StateIncome = utils.FormatUSD(box1)
	}
	return summary, nil
}
