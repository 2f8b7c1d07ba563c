package services_test

import (
	"context"
	"testing"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ScheduleCServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockMileageRepo *MockMileageRepository
	service         portssvc.ScheduleCService
	userID          string
}

func (suite *ScheduleCServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockMileageRepo = new(MockMileageRepository)
	mileage := services.NewMileageService(suite.mockMileageRepo, decimal.RequireFromString("0.70"))
	taxReport := services.NewTaxReportService(suite.mockTxnRepo)
	suite.service = services.NewScheduleCService(suite.mockTxnRepo, suite.mockMileageRepo, mileage, taxReport)
	suite.userID = "user-1"
}

// worksheetTxns builds the fixture ledger: regular income, an equipment
// sale, and expenses spread over mapped lines plus two Part V
// sub-categories.
func worksheetTxns() []domain.Transaction {
	fuel := classifiedTxn(domain.Expense, "35.00", "Vehicle", "Fuel", "fuel", "9", true)
	fuel.TransportType = domain.TransportPersonalVehicle

	parts := classifiedTxn(domain.Expense, "60.00", "Operations", "Drone Parts", "drone-parts", "27a", true)
	parts.SubCategoryID = "sub-parts"

	software := classifiedTxn(domain.Expense, "30.00", "Operations", "Software", "software", "27a", true)
	software.SubCategoryID = "sub-software"

	return []domain.Transaction{
		classifiedTxn(domain.Income, "1000.00", "Drone Services", "Aerial Photography", "aerial-photography", "1", true),
		classifiedTxn(domain.Income, "400.00", "Drone Services", "Equipment Sale", "equipment-sale", "1", true),
		classifiedTxn(domain.Expense, "80.00", "Food", "Meals", "meals", "24b", true),
		classifiedTxn(domain.Expense, "165.00", "Operations", "Supplies", "supplies", "22", true),
		fuel,
		parts,
		software,
	}
}

func filterTxns(txns []domain.Transaction, transType domain.TransactionType) []domain.Transaction {
	out := []domain.Transaction{}
	for _, t := range txns {
		if t.TransType == transType {
			out = append(out, t)
		}
	}
	return out
}

func (suite *ScheduleCServiceTestSuite) expectWorksheetQueries(txns []domain.Transaction, entries []domain.MileageEntry) {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025}).
		Return(txns, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025, TransType: domain.Income}).
		Return(filterTxns(txns, domain.Income), nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{Year: 2025, TransType: domain.Expense}).
		Return(filterTxns(txns, domain.Expense), nil).Once()
	suite.mockMileageRepo.On("ListEntries", ctx, suite.userID, portsrepo.MileageFilter{Year: 2025, MileageType: domain.MileageTaxable}).
		Return(entries, nil).Once()
	if len(entries) > 0 {
		suite.mockMileageRepo.On("FindRate", ctx, suite.userID, 2025).
			Return(rate(suite.userID, 2025, "0.70"), nil).Once()
	}
}

func (suite *ScheduleCServiceTestSuite) assertLine(got decimal.Decimal, want string, line string) {
	suite.True(got.Equal(decimal.RequireFromString(want)), "%s: got %s want %s", line, got, want)
}

func (suite *ScheduleCServiceTestSuite) TestWorksheet_FullYear() {
	ctx := context.Background()
	entries := []domain.MileageEntry{taxableEntry("2025-05-02", "50")}
	suite.expectWorksheetQueries(worksheetTxns(), entries)

	ws, err := suite.service.Worksheet(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.Equal(2025, ws.Year)

	// Equipment sale proceeds stay off gross receipts.
	suite.assertLine(ws.Line1, "1000.00", "line 1")
	suite.assertLine(ws.Line3, "1000.00", "line 3")
	suite.assertLine(ws.Line5, "1000.00", "line 5")
	suite.assertLine(ws.Line7, "1000.00", "line 7")

	// Personal-vehicle fuel is zeroed; mileage dollars land on line 9.
	suite.assertLine(ws.Line9, "35.00", "line 9")
	suite.assertLine(ws.Line22, "165.00", "line 22")
	suite.assertLine(ws.Line24a, "0.00", "line 24a")
	suite.assertLine(ws.Line24b, "40.00", "line 24b")
	suite.assertLine(ws.Line24, "40.00", "line 24")
	suite.assertLine(ws.Line27a, "90.00", "line 27a")

	suite.assertLine(ws.Line28, "330.00", "line 28")
	suite.assertLine(ws.Line29, "670.00", "line 29")
	suite.assertLine(ws.Line31, "670.00", "line 31")

	suite.assertLine(ws.TotalMiles, "50.0", "total miles")
	suite.assertLine(ws.MileageDollars, "35.00", "mileage dollars")

	suite.assertLine(ws.Line48Total, "90.00", "line 48")
	suite.Require().Len(ws.PartVRows, 2)
	suite.Equal("Drone Parts", ws.PartVRows[0].Name)
	suite.assertLine(ws.PartVRows[0].Total, "60.00", "part V drone parts")
	suite.Equal("Software", ws.PartVRows[1].Name)
	suite.assertLine(ws.PartVRows[1].Total, "30.00", "part V software")

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockMileageRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleCServiceTestSuite) TestWorksheet_EmptyYearIsAllZeros() {
	ctx := context.Background()
	suite.expectWorksheetQueries([]domain.Transaction{}, []domain.MileageEntry{})

	ws, err := suite.service.Worksheet(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.True(ws.Line1.IsZero())
	suite.True(ws.Line28.IsZero())
	suite.True(ws.Line31.IsZero())
	suite.Empty(ws.PartVRows)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockMileageRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleCServiceTestSuite) TestWorksheet_LossYear() {
	ctx := context.Background()
	txns := []domain.Transaction{
		classifiedTxn(domain.Income, "100.00", "Drone Services", "Aerial Photography", "aerial-photography", "1", true),
		classifiedTxn(domain.Expense, "250.00", "Operations", "Supplies", "supplies", "22", true),
	}
	suite.expectWorksheetQueries(txns, []domain.MileageEntry{})

	ws, err := suite.service.Worksheet(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.assertLine(ws.Line29, "-150.00", "line 29")
	suite.assertLine(ws.Line31, "-150.00", "line 31")
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockMileageRepo.AssertExpectations(suite.T())
}

func TestScheduleCServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleCServiceTestSuite))
}
