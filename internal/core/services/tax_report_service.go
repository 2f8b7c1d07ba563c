package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
)

// taxReportService implements portssvc.TaxReportService. Both report views
// start from the same repository query and the same
// Transaction.IncludedInTaxReports filter, which is what makes the
// category totals and the Schedule C line totals reconcile to the cent.
type taxReportService struct {
	BaseService
	txnRepo portsrepo.TransactionRepository
}

// NewTaxReportService creates a new tax report service.
func NewTaxReportService(txnRepo portsrepo.TransactionRepository) portssvc.TaxReportService {
	return &taxReportService{txnRepo: txnRepo}
}

var _ portssvc.TaxReportService = (*taxReportService)(nil)

// CategorySummary groups a year's transactions by category and
// sub-category, carrying face and tax-adjusted totals side by side.
func (s *taxReportService) CategorySummary(ctx context.Context, userID string, year int, taxOnly bool) (*domain.CategorySummaryReport, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{Year: year})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}

	report := &domain.CategorySummaryReport{
		Year:                 year,
		TaxOnly:              taxOnly,
		IncomeTotal:          domain.ZeroMoney(),
		ExpenseTotal:         domain.ZeroMoney(),
		ExpenseAdjustedTotal: domain.ZeroMoney(),
	}

	incomeGroups := map[string]*domain.CategoryGroup{}
	expenseGroups := map[string]*domain.CategoryGroup{}

	for _, t := range txns {
		if taxOnly && !t.IncludedInTaxReports() {
			continue
		}

		face := domain.QuantizeMoney(t.Amount)
		adjusted := t.DeductibleAmount()

		groups := expenseGroups
		if t.TransType == domain.Income {
			groups = incomeGroups
			report.IncomeTotal = domain.AddMoney(report.IncomeTotal, face)
		} else {
			report.ExpenseTotal = domain.AddMoney(report.ExpenseTotal, face)
			report.ExpenseAdjustedTotal = domain.AddMoney(report.ExpenseAdjustedTotal, adjusted)
		}

		catName := "Uncategorized"
		if t.Category != nil {
			catName = t.Category.Name
		}
		group, ok := groups[catName]
		if !ok {
			group = &domain.CategoryGroup{
				Name:          catName,
				FaceTotal:     domain.ZeroMoney(),
				AdjustedTotal: domain.ZeroMoney(),
			}
			groups[catName] = group
		}
		group.FaceTotal = domain.AddMoney(group.FaceTotal, face)
		group.AdjustedTotal = domain.AddMoney(group.AdjustedTotal, adjusted)

		subName := ""
		subLine := ""
		if t.SubCategory != nil {
			subName = t.SubCategory.Name
			subLine = t.ResolvedScheduleCLine()
		}
		if subName != "" {
			idx := -1
			for i := range group.SubCategories {
				if group.SubCategories[i].Name == subName {
					idx = i
					break
				}
			}
			if idx < 0 {
				group.SubCategories = append(group.SubCategories, domain.SubCategoryTotal{
					Name:          subName,
					ScheduleCLine: subLine,
					FaceTotal:     domain.ZeroMoney(),
					AdjustedTotal: domain.ZeroMoney(),
				})
				idx = len(group.SubCategories) - 1
			}
			group.SubCategories[idx].FaceTotal = domain.AddMoney(group.SubCategories[idx].FaceTotal, face)
			group.SubCategories[idx].AdjustedTotal = domain.AddMoney(group.SubCategories[idx].AdjustedTotal, adjusted)
		}
	}

	report.IncomeCategories = sortedGroups(incomeGroups)
	report.ExpenseCategories = sortedGroups(expenseGroups)
	report.NetProfit = domain.QuantizeMoney(report.IncomeTotal.Sub(report.ExpenseTotal))
	return report, nil
}

// ScheduleCLineTotals groups the tax-filtered set by resolved Schedule C
// line, expenses at their adjusted amounts.
func (s *taxReportService) ScheduleCLineTotals(ctx context.Context, userID string, year int) ([]domain.ScheduleCLineTotal, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{Year: year})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for line totals: %w", err)
	}

	byLine := map[string]*domain.ScheduleCLineTotal{}
	for _, t := range txns {
		if !t.IncludedInTaxReports() {
			continue
		}
		line := t.ResolvedScheduleCLine()
		lt, ok := byLine[line]
		if !ok {
			lt = &domain.ScheduleCLineTotal{
				Line:    line,
				Income:  domain.ZeroMoney(),
				Expense: domain.ZeroMoney(),
			}
			byLine[line] = lt
		}
		if t.TransType == domain.Income {
			lt.Income = domain.AddMoney(lt.Income, t.Amount)
		} else {
			lt.Expense = domain.AddMoney(lt.Expense, t.DeductibleAmount())
		}
	}

	out := make([]domain.ScheduleCLineTotal, 0, len(byLine))
	for _, lt := range byLine {
		out = append(out, *lt)
	}
	sort.Slice(out, func(i, j int) bool {
		return lineSortKey(out[i].Line) < lineSortKey(out[j].Line)
	})
	return out, nil
}

func sortedGroups(groups map[string]*domain.CategoryGroup) []domain.CategoryGroup {
	out := make([]domain.CategoryGroup, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.SubCategories, func(i, j int) bool {
			return g.SubCategories[i].Name < g.SubCategories[j].Name
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// lineSortKey orders form lines numerically with their letter suffix, so
// "9" sorts before "16a" and "16a" before "16b".
func lineSortKey(line string) string {
	num := line
	suffix := ""
	for i, r := range line {
		if r < '0' || r > '9' {
			num, suffix = line[:i], line[i:]
			break
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return "99" + line
	}
	return fmt.Sprintf("%02d%s", n, suffix)
}
