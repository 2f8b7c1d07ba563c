package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/core/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategoryService
	userID   string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
	suite.userID = "user-1"
}

// --- CreateCategory ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_DerivesSlugFromName() {
	ctx := context.Background()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Drone Services" &&
			c.CategoryType == domain.CategoryIncome &&
			c.Slug == "drone-services" &&
			c.UserID == suite.userID &&
			c.CategoryID != ""
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.userID, dto.CreateCategoryRequest{
		Name:         "Drone Services",
		CategoryType: "Income",
	})

	suite.Require().NoError(err)
	suite.Equal("drone-services", category.Slug)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("SaveCategory", ctx, mock.Anything).Return(errRepoFailure).Once()

	_, err := suite.service.CreateCategory(ctx, suite.userID, dto.CreateCategoryRequest{
		Name:         "Meals",
		CategoryType: "Expense",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, errRepoFailure)
}

// --- DeleteCategory ---

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReferencedIsProtected() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteCategory", ctx, suite.userID, "cat-1").
		Return(fmt.Errorf("%w: category cat-1", apperrors.ErrProtected)).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, "cat-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtected)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_Succeeds() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteCategory", ctx, suite.userID, "cat-1").Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteCategory(ctx, suite.userID, "cat-1"))
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- CreateSubCategory ---

func (suite *CategoryServiceTestSuite) TestCreateSubCategory_DerivesSlugAndChecksUniqueness() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, "cat-1").
		Return(&domain.Category{CategoryID: "cat-1", CategoryType: domain.CategoryExpense}, nil).Once()
	suite.mockRepo.On("FindSubCategoryBySlug", ctx, suite.userID, "rental-car-fuel").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSubCategory", ctx, mock.MatchedBy(func(s domain.SubCategory) bool {
		return s.CategoryID == "cat-1" && s.Slug == "rental-car-fuel" && s.IncludeInTaxReports
	})).Return(nil).Once()

	subCategory, err := suite.service.CreateSubCategory(ctx, suite.userID, dto.CreateSubCategoryRequest{
		CategoryID:          "cat-1",
		Name:                "Rental Car Fuel",
		IncludeInTaxReports: true,
	})

	suite.Require().NoError(err)
	suite.Equal("rental-car-fuel", subCategory.Slug)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateSubCategory_DuplicateSlug() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, "cat-1").
		Return(&domain.Category{CategoryID: "cat-1"}, nil).Once()
	suite.mockRepo.On("FindSubCategoryBySlug", ctx, suite.userID, "meals").
		Return(&domain.SubCategory{SubCategoryID: "sub-1", Slug: "meals"}, nil).Once()

	_, err := suite.service.CreateSubCategory(ctx, suite.userID, dto.CreateSubCategoryRequest{
		CategoryID: "cat-1",
		Name:       "Meals",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSubCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateSubCategory_UnknownCategory() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateSubCategory(ctx, suite.userID, dto.CreateSubCategoryRequest{
		CategoryID: "missing",
		Name:       "Meals",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CategoryServiceTestSuite) TestCreateSubCategory_ExplicitSlugNormalized() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, "cat-1").
		Return(&domain.Category{CategoryID: "cat-1"}, nil).Once()
	suite.mockRepo.On("FindSubCategoryBySlug", ctx, suite.userID, "fuel").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSubCategory", ctx, mock.MatchedBy(func(s domain.SubCategory) bool {
		return s.Slug == "fuel"
	})).Return(nil).Once()

	subCategory, err := suite.service.CreateSubCategory(ctx, suite.userID, dto.CreateSubCategoryRequest{
		CategoryID: "cat-1",
		Name:       "Vehicle Fuel",
		Slug:       "  Fuel ",
	})

	suite.Require().NoError(err)
	suite.Equal("fuel", subCategory.Slug)
}

// --- Lists ---

func (suite *CategoryServiceTestSuite) TestListSubCategories_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListSubCategories", ctx, suite.userID, "cat-1").
		Return(nil, nil).Once()

	subCategories, err := suite.service.ListSubCategories(ctx, suite.userID, "cat-1")

	suite.Require().NoError(err)
	suite.NotNil(subCategories)
	suite.Empty(subCategories)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
