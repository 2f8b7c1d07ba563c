package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/core/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type MileageServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMileageRepository
	service  portssvc.MileageService
	userID   string
}

func (suite *MileageServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMileageRepository)
	suite.service = services.NewMileageService(suite.mockRepo, decimal.RequireFromString("0.70"))
	suite.userID = "user-1"
}

func rate(userID string, year int, value string) *domain.MileageRate {
	return &domain.MileageRate{
		RateID: "rate-" + value,
		UserID: userID,
		Year:   year,
		Rate:   decimal.RequireFromString(value),
	}
}

func taxableEntry(date string, miles string) domain.MileageEntry {
	d, _ := time.Parse("2006-01-02", date)
	return domain.MileageEntry{
		Date:        d,
		Total:       decimal.RequireFromString(miles),
		HasTotal:    true,
		MileageType: domain.MileageTaxable,
	}
}

// --- Rate fallback chain ---

func (suite *MileageServiceTestSuite) TestRateFor_UserYearRate() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(rate(suite.userID, 2025, "0.72"), nil).Once()

	got, err := suite.service.RateFor(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.RequireFromString("0.72")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestRateFor_FallsBackToGlobalYearRate() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGlobalRate", ctx, 2025).Return(rate("", 2025, "0.68"), nil).Once()

	got, err := suite.service.RateFor(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.RequireFromString("0.68")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestRateFor_FallsBackToLatestUserRate() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGlobalRate", ctx, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestRateForUser", ctx, suite.userID).Return(rate(suite.userID, 2023, "0.655"), nil).Once()

	got, err := suite.service.RateFor(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.RequireFromString("0.655")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestRateFor_FallsBackToLatestGlobalRate() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGlobalRate", ctx, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestRateForUser", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestGlobalRate", ctx).Return(rate("", 2022, "0.585"), nil).Once()

	got, err := suite.service.RateFor(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.RequireFromString("0.585")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestRateFor_FallsBackToConfiguredDefault() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGlobalRate", ctx, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestRateForUser", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestGlobalRate", ctx).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.RateFor(ctx, suite.userID, 2025)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.RequireFromString("0.70")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestRateFor_RepoErrorStopsChain() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(nil, errRepoFailure).Once()

	_, err := suite.service.RateFor(ctx, suite.userID, 2025)

	suite.Require().Error(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Valuation ---

func (suite *MileageServiceTestSuite) TestTotalDollars_ValuesTaxableMiles() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(rate(suite.userID, 2025, "0.70"), nil).Once()

	entries := []domain.MileageEntry{
		taxableEntry("2025-03-01", "60"),
		taxableEntry("2025-04-10", "40"),
	}

	total, err := suite.service.TotalDollars(ctx, suite.userID, entries)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("70.00")), "got %s", total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestTotalDollars_ReimbursedEntriesValueZero() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(rate(suite.userID, 2025, "0.70"), nil).Once()

	reimbursed := taxableEntry("2025-05-01", "500")
	reimbursed.MileageType = domain.MileageReimbursed
	entries := []domain.MileageEntry{
		taxableEntry("2025-03-01", "10"),
		reimbursed,
	}

	total, err := suite.service.TotalDollars(ctx, suite.userID, entries)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("7.00")), "got %s", total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestTotalDollars_RateResolvedPerEntryYear() {
	ctx := context.Background()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2024).Return(rate(suite.userID, 2024, "0.67"), nil).Once()
	suite.mockRepo.On("FindRate", ctx, suite.userID, 2025).Return(rate(suite.userID, 2025, "0.70"), nil).Once()

	entries := []domain.MileageEntry{
		taxableEntry("2024-12-20", "100"), // 67.00
		taxableEntry("2025-01-05", "100"), // 70.00
		taxableEntry("2025-02-05", "10"),  // 7.00, rate memoized
	}

	total, err := suite.service.TotalDollars(ctx, suite.userID, entries)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("144.00")), "got %s", total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestTotalDollars_EmptyEntriesZero() {
	ctx := context.Background()

	total, err := suite.service.TotalDollars(ctx, suite.userID, nil)

	suite.Require().NoError(err)
	suite.True(total.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Entry creation ---

func (suite *MileageServiceTestSuite) TestCreateEntry_OdometerPair() {
	ctx := context.Background()
	begin := decimal.RequireFromString("1000.0")
	end := decimal.RequireFromString("1042.3")
	req := dto.CreateMileageEntryRequest{
		Date:        "2025-06-15",
		Begin:       &begin,
		End:         &end,
		MileageType: "Taxable",
	}

	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.MileageEntry) bool {
		return !e.HasTotal && e.Begin.Equal(begin) && e.End.Equal(end) && e.UserID == suite.userID
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.Miles().Equal(decimal.RequireFromString("42.3")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestCreateEntry_RequiresDistance() {
	ctx := context.Background()
	req := dto.CreateMileageEntryRequest{
		Date:        "2025-06-15",
		MileageType: "Taxable",
	}

	_, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *MileageServiceTestSuite) TestCreateEntry_RejectsNegativeTotal() {
	ctx := context.Background()
	total := decimal.RequireFromString("-5")
	req := dto.CreateMileageEntryRequest{
		Date:        "2025-06-15",
		Total:       &total,
		MileageType: "Taxable",
	}

	_, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MileageServiceTestSuite) TestCreateEntry_RejectsEndBeforeBegin() {
	ctx := context.Background()
	begin := decimal.RequireFromString("500")
	end := decimal.RequireFromString("400")
	req := dto.CreateMileageEntryRequest{
		Date:        "2025-06-15",
		Begin:       &begin,
		End:         &end,
		MileageType: "Taxable",
	}

	_, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- SaveRate ---

func (suite *MileageServiceTestSuite) TestSaveRate_UserScoped() {
	ctx := context.Background()
	suite.mockRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.MileageRate) bool {
		return r.UserID == suite.userID && r.Year == 2026 &&
			r.Rate.Equal(decimal.RequireFromString("0.72")) && r.RateID != ""
	})).Return(nil).Once()

	saved, err := suite.service.SaveRate(ctx, suite.userID, dto.SaveMileageRateRequest{
		Year: 2026,
		Rate: decimal.RequireFromString("0.72"),
	})

	suite.Require().NoError(err)
	suite.Equal(2026, saved.Year)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MileageServiceTestSuite) TestSaveRate_GlobalDropsUserID() {
	ctx := context.Background()
	suite.mockRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.MileageRate) bool {
		return r.UserID == "" && r.Year == 2026
	})).Return(nil).Once()

	saved, err := suite.service.SaveRate(ctx, suite.userID, dto.SaveMileageRateRequest{
		Year:   2026,
		Rate:   decimal.RequireFromString("0.70"),
		Global: true,
	})

	suite.Require().NoError(err)
	suite.Empty(saved.UserID)
}

func (suite *MileageServiceTestSuite) TestSaveRate_RejectsNegative() {
	ctx := context.Background()

	_, err := suite.service.SaveRate(ctx, suite.userID, dto.SaveMileageRateRequest{
		Year: 2026,
		Rate: decimal.RequireFromString("-0.10"),
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func TestMileageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MileageServiceTestSuite))
}
