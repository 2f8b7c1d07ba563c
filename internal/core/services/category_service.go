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

// categoryService implements portssvc.CategoryService.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategoryService = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now()
	category := domain.Category{
		CategoryID:    uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		CategoryType:  domain.CategoryType(req.CategoryType),
		ScheduleCLine: req.ScheduleCLine,
		Slug:          domain.Slugify(req.Name),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// DeleteCategory removes a category. The storage layer refuses with
// apperrors.ErrProtected while transactions still reference it; that error
// passes through untouched so handlers can report the conflict.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrProtected) {
			return err
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CreateSubCategory derives the slug from the name when the request leaves
// it blank. Slugs drive the tax-adjustment classifier, so a slug already
// in use is rejected rather than silently shadowed.
func (s *categoryService) CreateSubCategory(ctx context.Context, userID string, req dto.CreateSubCategoryRequest) (*domain.SubCategory, error) {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, userID, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	slug := domain.NormalizedSlug(req.Slug)
	if slug == "" {
		slug = domain.Slugify(req.Name)
	}
	if slug != "" {
		existing, err := s.categoryRepo.FindSubCategoryBySlug(ctx, userID, slug)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: slug %q is already in use", apperrors.ErrDuplicate, slug)
		}
	}

	now := time.Now()
	subCategory := domain.SubCategory{
		SubCategoryID:       uuid.NewString(),
		UserID:              userID,
		CategoryID:          req.CategoryID,
		Name:                req.Name,
		Slug:                slug,
		ScheduleCLine:       req.ScheduleCLine,
		IncludeInTaxReports: req.IncludeInTaxReports,
		IncludeInPLReports:  req.IncludeInPLReports,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveSubCategory(ctx, subCategory); err != nil {
		return nil, fmt.Errorf("failed to save sub-category: %w", err)
	}
	return &subCategory, nil
}

func (s *categoryService) ListSubCategories(ctx context.Context, userID, categoryID string) ([]domain.SubCategory, error) {
	subCategories, err := s.categoryRepo.ListSubCategories(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories: %w", err)
	}
	if subCategories == nil {
		return []domain.SubCategory{}, nil
	}
	return subCategories, nil
}

func (s *categoryService) DeleteSubCategory(ctx context.Context, userID, subCategoryID string) error {
	if err := s.categoryRepo.DeleteSubCategory(ctx, userID, subCategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrProtected) {
			return err
		}
		return fmt.Errorf("failed to delete sub-category: %w", err)
	}
	return nil
}
