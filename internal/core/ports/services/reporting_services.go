package services

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// TaxReportService defines the category and Schedule C line aggregations.
type TaxReportService interface {
	// CategorySummary groups the year's transactions by category and
	// sub-category. With taxOnly the unified tax-inclusion rule applies
	// and tax-adjusted totals are meaningful; without it every transaction
	// is shown at face value alongside its adjusted amount.
	CategorySummary(ctx context.Context, userID string, year int, taxOnly bool) (*domain.CategorySummaryReport, error)

	// ScheduleCLineTotals groups the same tax-filtered set by resolved
	// Schedule C line. The grand total must reconcile exactly with the
	// tax-adjusted expense total of CategorySummary(taxOnly=true).
	ScheduleCLineTotals(ctx context.Context, userID string, year int) ([]domain.ScheduleCLineTotal, error)
}

// ScheduleCService builds the full Schedule C worksheet.
type ScheduleCService interface {
	Worksheet(ctx context.Context, userID string, year int) (*domain.ScheduleCWorksheet, error)
}
