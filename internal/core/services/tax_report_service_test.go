package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxReportServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.TaxReportService
	userID      string
}

func (suite *TaxReportServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewTaxReportService(suite.mockTxnRepo)
	suite.userID = "user-1"
}

func classifiedTxn(transType domain.TransactionType, amount, categoryName, subName, slug, line string, includeInTax bool) domain.Transaction {
	return domain.Transaction{
		TransType: transType,
		Amount:    decimal.RequireFromString(amount),
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Category:  &domain.Category{Name: categoryName},
		SubCategory: &domain.SubCategory{
			Name:                subName,
			Slug:                slug,
			ScheduleCLine:       line,
			IncludeInTaxReports: includeInTax,
		},
	}
}

// mixedYearTxns is the shared fixture: one income transaction, three
// tax-included expenses with different adjustments, one sub-category
// excluded from tax reports and one uncategorized expense.
func mixedYearTxns() []domain.Transaction {
	fuel := classifiedTxn(domain.Expense, "35.00", "Vehicle", "Fuel", "fuel", "9", true)
	fuel.TransportType = domain.TransportPersonalVehicle

	uncategorized := domain.Transaction{
		TransType: domain.Expense,
		Amount:    decimal.RequireFromString("25.00"),
		Date:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	return []domain.Transaction{
		classifiedTxn(domain.Income, "1000.00", "Drone Services", "Aerial Photography", "aerial-photography", "1", true),
		classifiedTxn(domain.Expense, "80.00", "Food", "Meals", "meals", "24b", true),
		classifiedTxn(domain.Expense, "165.00", "Operations", "Supplies", "supplies", "22", true),
		fuel,
		classifiedTxn(domain.Expense, "50.00", "Personal", "Groceries", "groceries", "", false),
		uncategorized,
	}
}

func (suite *TaxReportServiceTestSuite) TestCategorySummary_TaxOnly() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025}).
		Return(mixedYearTxns(), nil).Once()

	report, err := suite.service.CategorySummary(ctx, suite.userID, 2025, true)

	suite.Require().NoError(err)
	suite.True(report.IncomeTotal.Equal(decimal.RequireFromString("1000.00")), "income %s", report.IncomeTotal)
	suite.True(report.ExpenseTotal.Equal(decimal.RequireFromString("280.00")), "face %s", report.ExpenseTotal)
	suite.True(report.ExpenseAdjustedTotal.Equal(decimal.RequireFromString("205.00")), "adjusted %s", report.ExpenseAdjustedTotal)
	suite.True(report.NetProfit.Equal(decimal.RequireFromString("720.00")), "net %s", report.NetProfit)

	suite.Require().Len(report.IncomeCategories, 1)
	suite.Equal("Drone Services", report.IncomeCategories[0].Name)
	suite.Require().Len(report.ExpenseCategories, 3)
	suite.Equal("Food", report.ExpenseCategories[0].Name)
	suite.True(report.ExpenseCategories[0].AdjustedTotal.Equal(decimal.RequireFromString("40.00")))
	suite.Equal("Operations", report.ExpenseCategories[1].Name)
	suite.Equal("Vehicle", report.ExpenseCategories[2].Name)
	suite.True(report.ExpenseCategories[2].AdjustedTotal.IsZero())

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TaxReportServiceTestSuite) TestCategorySummary_FullViewKeepsEverything() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025}).
		Return(mixedYearTxns(), nil).Once()

	report, err := suite.service.CategorySummary(ctx, suite.userID, 2025, false)

	suite.Require().NoError(err)
	suite.True(report.ExpenseTotal.Equal(decimal.RequireFromString("355.00")), "face %s", report.ExpenseTotal)

	names := make([]string, 0, len(report.ExpenseCategories))
	for _, g := range report.ExpenseCategories {
		names = append(names, g.Name)
	}
	suite.Contains(names, "Personal")
	suite.Contains(names, "Uncategorized")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TaxReportServiceTestSuite) TestScheduleCLineTotals_Ordering() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025}).
		Return(mixedYearTxns(), nil).Once()

	totals, err := suite.service.ScheduleCLineTotals(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(totals, 4)
	suite.Equal("1", totals[0].Line)
	suite.True(totals[0].Income.Equal(decimal.RequireFromString("1000.00")))
	suite.Equal("9", totals[1].Line)
	suite.True(totals[1].Expense.IsZero())
	suite.Equal("22", totals[2].Line)
	suite.True(totals[2].Expense.Equal(decimal.RequireFromString("165.00")))
	suite.Equal("24b", totals[3].Line)
	suite.True(totals[3].Expense.Equal(decimal.RequireFromString("40.00")))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// The category summary's tax-adjusted expense total and the Schedule C
// line totals come from the same filter and the same adjustment rule, so
// they must always add up to the same number.
func (suite *TaxReportServiceTestSuite) TestScheduleCLinesReconcileWithCategorySummary() {
	ctx := context.Background()
	txns := mixedYearTxns()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025}).
		Return(txns, nil).Twice()

	summary, err := suite.service.CategorySummary(ctx, suite.userID, 2025, true)
	suite.Require().NoError(err)

	lines, err := suite.service.ScheduleCLineTotals(ctx, suite.userID, 2025)
	suite.Require().NoError(err)

	lineExpenseTotal := domain.ZeroMoney()
	for _, lt := range lines {
		lineExpenseTotal = domain.AddMoney(lineExpenseTotal, lt.Expense)
	}
	suite.True(summary.ExpenseAdjustedTotal.Equal(lineExpenseTotal),
		"summary %s vs lines %s", summary.ExpenseAdjustedTotal, lineExpenseTotal)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TaxReportServiceTestSuite) TestCategorySummary_RepoError() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025}).
		Return(nil, errRepoFailure).Once()

	_, err := suite.service.CategorySummary(ctx, suite.userID, 2025, true)

	suite.Require().Error(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTaxReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxReportServiceTestSuite))
}
