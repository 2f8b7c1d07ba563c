package repositories

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories and
// sub-categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	// DeleteCategory fails with apperrors.ErrProtected while transactions
	// still reference the category.
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	SaveSubCategory(ctx context.Context, subCategory domain.SubCategory) error
	FindSubCategoryByID(ctx context.Context, userID, subCategoryID string) (*domain.SubCategory, error)
	FindSubCategoryBySlug(ctx context.Context, userID, slug string) (*domain.SubCategory, error)
	ListSubCategories(ctx context.Context, userID, categoryID string) ([]domain.SubCategory, error)
	DeleteSubCategory(ctx context.Context, userID, subCategoryID string) error
}
