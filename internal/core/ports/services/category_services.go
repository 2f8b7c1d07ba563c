package services

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/flightdeck-io/droneledger/internal/dto"
)

// CategoryService defines category and sub-category management operations.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	// DeleteCategory fails with apperrors.ErrProtected while transactions
	// still reference the category.
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// CreateSubCategory derives the slug from the name when the request
	// leaves it blank, and rejects a slug already in use with
	// apperrors.ErrDuplicate.
	CreateSubCategory(ctx context.Context, userID string, req dto.CreateSubCategoryRequest) (*domain.SubCategory, error)
	ListSubCategories(ctx context.Context, userID, categoryID string) ([]domain.SubCategory, error)
	DeleteSubCategory(ctx context.Context, userID, subCategoryID string) error
}
