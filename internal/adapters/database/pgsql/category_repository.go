package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreignKeyViolation is the PostgreSQL error code raised when a delete
// would orphan referencing rows. The schema uses ON DELETE RESTRICT so a
// category with transactions cannot be removed.
const foreignKeyViolation = "23503"

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCategoryRepository creates a new repository for category data.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, user_id, name, category_type, schedule_c_line, slug,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10)
		ON CONFLICT (category_id) DO UPDATE SET
			name = EXCLUDED.name,
			category_type = EXCLUDED.category_type,
			schedule_c_line = EXCLUDED.schedule_c_line,
			slug = EXCLUDED.slug,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name, category.CategoryType,
		category.ScheduleCLine, category.Slug,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, user_id, name, category_type, COALESCE(schedule_c_line, ''), COALESCE(slug, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE user_id = $1 AND category_id = $2;
	`
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, userID, categoryID).Scan(
		&c.CategoryID, &c.UserID, &c.Name, &c.CategoryType, &c.ScheduleCLine, &c.Slug,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT category_id, user_id, name, category_type, COALESCE(schedule_c_line, ''), COALESCE(slug, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE user_id = $1
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(
			&c.CategoryID, &c.UserID, &c.Name, &c.CategoryType, &c.ScheduleCLine, &c.Slug,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE user_id = $1 AND category_id = $2;`,
		userID, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: category %s still has transactions", apperrors.ErrProtected, categoryID)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) SaveSubCategory(ctx context.Context, subCategory domain.SubCategory) error {
	query := `
		INSERT INTO sub_categories (sub_category_id, user_id, category_id, name, slug, schedule_c_line,
			include_in_tax_reports, include_in_pl_reports,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12)
		ON CONFLICT (sub_category_id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			schedule_c_line = EXCLUDED.schedule_c_line,
			include_in_tax_reports = EXCLUDED.include_in_tax_reports,
			include_in_pl_reports = EXCLUDED.include_in_pl_reports,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		subCategory.SubCategoryID, subCategory.UserID, subCategory.CategoryID, subCategory.Name,
		subCategory.Slug, subCategory.ScheduleCLine,
		subCategory.IncludeInTaxReports, subCategory.IncludeInPLReports,
		subCategory.CreatedAt, subCategory.CreatedBy, subCategory.LastUpdatedAt, subCategory.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save sub-category %s: %w", subCategory.SubCategoryID, err)
	}
	return nil
}

const subCategorySelect = `
	SELECT sub_category_id, user_id, category_id, name, COALESCE(slug, ''), COALESCE(schedule_c_line, ''),
		include_in_tax_reports, include_in_pl_reports,
		created_at, created_by, last_updated_at, last_updated_by
	FROM sub_categories`

func scanSubCategory(row pgx.Row) (domain.SubCategory, error) {
	var sc domain.SubCategory
	err := row.Scan(
		&sc.SubCategoryID, &sc.UserID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.ScheduleCLine,
		&sc.IncludeInTaxReports, &sc.IncludeInPLReports,
		&sc.CreatedAt, &sc.CreatedBy, &sc.LastUpdatedAt, &sc.LastUpdatedBy,
	)
	return sc, err
}

func (r *PgxCategoryRepository) FindSubCategoryByID(ctx context.Context, userID, subCategoryID string) (*domain.SubCategory, error) {
	query := subCategorySelect + ` WHERE user_id = $1 AND sub_category_id = $2;`
	sc, err := scanSubCategory(r.pool.QueryRow(ctx, query, userID, subCategoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sub-category %s: %w", subCategoryID, err)
	}
	return &sc, nil
}

func (r *PgxCategoryRepository) FindSubCategoryBySlug(ctx context.Context, userID, slug string) (*domain.SubCategory, error) {
	query := subCategorySelect + ` WHERE user_id = $1 AND slug = $2;`
	sc, err := scanSubCategory(r.pool.QueryRow(ctx, query, userID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sub-category by slug %s: %w", slug, err)
	}
	return &sc, nil
}

func (r *PgxCategoryRepository) ListSubCategories(ctx context.Context, userID, categoryID string) ([]domain.SubCategory, error) {
	query := subCategorySelect + ` WHERE user_id = $1 AND category_id = $2 ORDER BY name;`
	rows, err := r.pool.Query(ctx, query, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-categories: %w", err)
	}
	defer rows.Close()

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SubCategory, error) {
		return scanSubCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sub-categories: %w", err)
	}
	return subs, nil
}

func (r *PgxCategoryRepository) DeleteSubCategory(ctx context.Context, userID, subCategoryID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM sub_categories WHERE user_id = $1 AND sub_category_id = $2;`,
		userID, subCategoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: sub-category %s still has transactions", apperrors.ErrProtected, subCategoryID)
		}
		return fmt.Errorf("failed to delete sub-category %s: %w", subCategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
