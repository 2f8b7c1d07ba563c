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
)

// companyService implements portssvc.CompanyService.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepository) portssvc.CompanyService {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanyService = (*companyService)(nil)

// ActiveProfile resolves the deployment's active company profile. A
// deployment with no profile configured is a valid state and returns nil
// rather than an error; features that depend on the profile degrade to
// their defaults.
func (s *companyService) ActiveProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	profile, err := s.companyRepo.FindActiveProfile(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve active company profile: %w", err)
	}
	return profile, nil
}

// SaveProfile creates the company profile on first save and replaces the
// active one afterwards, keeping its identity and audit history.
func (s *companyService) SaveProfile(ctx context.Context, req dto.SaveCompanyProfileRequest) (*domain.CompanyProfile, error) {
	existing, err := s.ActiveProfile(ctx)
	if err != nil {
		return nil, err
	}

	netDays := req.DefaultNetDays
	if netDays == 0 {
		netDays = fallbackNetDays
	}

	now := time.Now()
	profile := domain.CompanyProfile{
		ProfileID:   uuid.NewString(),
		Slug:        domain.Slugify(req.LegalName),
		LegalName:   req.LegalName,
		DisplayName: req.DisplayName,
		State:       req.State,
		TaxID:       req.TaxID,

		State1099ReportingEnabled: req.State1099ReportingEnabled,
		IsActive:                  true,

		DefaultNetDays: netDays,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if existing != nil {
		profile.ProfileID = existing.ProfileID
		profile.CreatedAt = existing.CreatedAt
		profile.CreatedBy = existing.CreatedBy
	}

	if err := s.companyRepo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save company profile: %w", err)
	}
	return &profile, nil
}
