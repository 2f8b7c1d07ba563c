package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// scheduleCService builds the Schedule C worksheet from the same filtered
// transaction set the line-totals report uses, plus the taxable mileage
// deduction for line 9.
type scheduleCService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepository
	mileageRepo portsrepo.MileageRepository
	mileage     portssvc.MileageService
	taxReport   portssvc.TaxReportService
}

// NewScheduleCService creates a new Schedule C worksheet service.
func NewScheduleCService(
	txnRepo portsrepo.TransactionRepository,
	mileageRepo portsrepo.MileageRepository,
	mileage portssvc.MileageService,
	taxReport portssvc.TaxReportService,
) portssvc.ScheduleCService {
	return &scheduleCService{
		txnRepo:     txnRepo,
		mileageRepo: mileageRepo,
		mileage:     mileage,
		taxReport:   taxReport,
	}
}

var _ portssvc.ScheduleCService = (*scheduleCService)(nil)

// Worksheet computes the Schedule C form amounts for a tax year. Lines the
// form expects to be entered by hand (depreciation, home office and the
// like) stay zero.
func (s *scheduleCService) Worksheet(ctx context.Context, userID string, year int) (*domain.ScheduleCWorksheet, error) {
	ws := &domain.ScheduleCWorksheet{Year: year}
	zeroWorksheet(ws)

	lineTotals, err := s.taxReport.ScheduleCLineTotals(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	byLine := make(map[string]domain.ScheduleCLineTotal, len(lineTotals))
	for _, lt := range lineTotals {
		byLine[lt.Line] = lt
	}

	if err := s.fillIncome(ctx, ws, userID, year); err != nil {
		return nil, err
	}
	fillExpenseLines(ws, byLine)

	if err := s.fillMileage(ctx, ws, userID, year); err != nil {
		return nil, err
	}

	if err := s.fillPartV(ctx, ws, userID, year); err != nil {
		return nil, err
	}

	// Form arithmetic.
	ws.Line3 = domain.QuantizeMoney(ws.Line1.Sub(ws.Line2))
	ws.Line5 = domain.QuantizeMoney(ws.Line3.Sub(ws.Line4))
	ws.Line7 = domain.AddMoney(ws.Line5, ws.Line6)
	ws.Line24 = domain.AddMoney(ws.Line24a, ws.Line24b)
	ws.Line28 = totalExpenses(ws)
	ws.Line29 = domain.QuantizeMoney(ws.Line7.Sub(ws.Line28))
	ws.Line31 = domain.QuantizeMoney(ws.Line29.Sub(ws.Line30))

	return ws, nil
}

// fillIncome sums gross receipts for line 1. Equipment sale proceeds are
// excluded: they belong on Form 4797, not Schedule C gross receipts.
func (s *scheduleCService) fillIncome(ctx context.Context, ws *domain.ScheduleCWorksheet, userID string, year int) error {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{
		Year:      year,
		TransType: domain.Income,
	})
	if err != nil {
		return fmt.Errorf("failed to load income transactions: %w", err)
	}

	for _, t := range txns {
		if t.SubCategory != nil && domain.NormalizedSlug(t.SubCategory.Slug) == domain.SlugEquipmentSale {
			continue
		}
		ws.Line1 = domain.AddMoney(ws.Line1, t.Amount)
	}
	return nil
}

// fillMileage adds the standard mileage deduction to line 9 on top of any
// car and truck expenses already mapped there.
func (s *scheduleCService) fillMileage(ctx context.Context, ws *domain.ScheduleCWorksheet, userID string, year int) error {
	entries, err := s.mileageRepo.ListEntries(ctx, userID, portsrepo.MileageFilter{
		Year:        year,
		MileageType: domain.MileageTaxable,
	})
	if err != nil {
		return fmt.Errorf("failed to load mileage entries: %w", err)
	}

	miles := decimal.Zero
	for _, entry := range entries {
		miles = miles.Add(entry.Miles())
	}
	dollars, err := s.mileage.TotalDollars(ctx, userID, entries)
	if err != nil {
		return err
	}

	ws.TotalMiles = miles.Round(1)
	ws.MileageDollars = dollars
	ws.Line9 = domain.AddMoney(ws.Line9, dollars)
	return nil
}

// fillPartV details the sub-categories behind line 27a ("Other expenses").
func (s *scheduleCService) fillPartV(ctx context.Context, ws *domain.ScheduleCWorksheet, userID string, year int) error {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{
		Year:      year,
		TransType: domain.Expense,
	})
	if err != nil {
		return fmt.Errorf("failed to load expense transactions: %w", err)
	}

	rows := map[string]*domain.PartVRow{}
	for _, t := range txns {
		if !t.IncludedInTaxReports() || t.ResolvedScheduleCLine() != "27a" {
			continue
		}
		row, ok := rows[t.SubCategoryID]
		if !ok {
			row = &domain.PartVRow{
				SubCategoryID: t.SubCategoryID,
				Name:          t.SubCategory.Name,
				Total:         domain.ZeroMoney(),
			}
			rows[t.SubCategoryID] = row
		}
		row.Total = domain.AddMoney(row.Total, t.DeductibleAmount())
	}

	out := make([]domain.PartVRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	ws.PartVRows = out
	ws.Line48Total = ws.Line27a
	return nil
}

// fillExpenseLines maps the aggregated line totals onto the worksheet
// fields.
func fillExpenseLines(ws *domain.ScheduleCWorksheet, byLine map[string]domain.ScheduleCLineTotal) {
	fields := map[string]*decimal.Decimal{
		"4":   &ws.Line4,
		"8":   &ws.Line8,
		"9":   &ws.Line9,
		"10":  &ws.Line10,
		"11":  &ws.Line11,
		"15":  &ws.Line15,
		"16a": &ws.Line16a,
		"16b": &ws.Line16b,
		"17":  &ws.Line17,
		"18":  &ws.Line18,
		"20a": &ws.Line20a,
		"20b": &ws.Line20b,
		"21":  &ws.Line21,
		"22":  &ws.Line22,
		"23":  &ws.Line23,
		"24a": &ws.Line24a,
		"24b": &ws.Line24b,
		"25":  &ws.Line25,
		"26":  &ws.Line26,
		"27a": &ws.Line27a,
	}
	for line, field := range fields {
		if lt, ok := byLine[line]; ok {
			*field = lt.Expense
		}
	}
}

func totalExpenses(ws *domain.ScheduleCWorksheet) decimal.Decimal {
	total := domain.ZeroMoney()
	for _, line := range []decimal.Decimal{
		ws.Line8, ws.Line9, ws.Line10, ws.Line11, ws.Line12, ws.Line13,
		ws.Line14, ws.Line15, ws.Line16a, ws.Line16b, ws.Line17, ws.Line18,
		ws.Line19, ws.Line20a, ws.Line20b, ws.Line21, ws.Line22, ws.Line23,
		ws.Line24, ws.Line25, ws.Line26, ws.Line27a, ws.Line27b,
	} {
		total = domain.AddMoney(total, line)
	}
	return total
}

// zeroWorksheet initializes every monetary field to 0.00 so JSON output
// shows explicit zeros instead of uninitialized decimals.
func zeroWorksheet(ws *domain.ScheduleCWorksheet) {
	zero := domain.ZeroMoney()
	for _, field := range []*decimal.Decimal{
		&ws.Line1, &ws.Line2, &ws.Line3, &ws.Line4, &ws.Line5, &ws.Line6, &ws.Line7,
		&ws.Line8, &ws.Line9, &ws.Line10, &ws.Line11, &ws.Line12, &ws.Line13, &ws.Line14,
		&ws.Line15, &ws.Line16a, &ws.Line16b, &ws.Line17, &ws.Line18, &ws.Line19,
		&ws.Line20a, &ws.Line20b, &ws.Line21, &ws.Line22, &ws.Line23, &ws.Line24,
		&ws.Line24a, &ws.Line24b, &ws.Line25, &ws.Line26, &ws.Line27a, &ws.Line27b,
		&ws.Line28, &ws.Line29, &ws.Line30, &ws.Line31, &ws.Line48Total,
		&ws.TotalMiles, &ws.MileageDollars,
	} {
		*field = zero
	}
}
