package services_test

import (
	"context"
	"errors"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// errRepoFailure stands in for an unexpected storage error in tests.
var errRepoFailure = errors.New("storage failure")

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListRecurringTemplates(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveGeneratedTransaction(ctx context.Context, txn domain.Transaction, template domain.RecurringTransaction) error {
	args := m.Called(ctx, txn, template)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveSubCategory(ctx context.Context, subCategory domain.SubCategory) error {
	args := m.Called(ctx, subCategory)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindSubCategoryByID(ctx context.Context, userID, subCategoryID string) (*domain.SubCategory, error) {
	args := m.Called(ctx, userID, subCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindSubCategoryBySlug(ctx context.Context, userID, slug string) (*domain.SubCategory, error) {
	args := m.Called(ctx, userID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListSubCategories(ctx context.Context, userID, categoryID string) ([]domain.SubCategory, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubCategory), args.Error(1)
}

func (m *MockCategoryRepository) DeleteSubCategory(ctx context.Context, userID, subCategoryID string) error {
	args := m.Called(ctx, userID, subCategoryID)
	return args.Error(0)
}

// --- Mock MileageRepository ---
type MockMileageRepository struct {
	mock.Mock
}

func (m *MockMileageRepository) SaveEntry(ctx context.Context, entry domain.MileageEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMileageRepository) ListEntries(ctx context.Context, userID string, filter portsrepo.MileageFilter) ([]domain.MileageEntry, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MileageEntry), args.Error(1)
}

func (m *MockMileageRepository) FindRate(ctx context.Context, userID string, year int) (*domain.MileageRate, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileageRate), args.Error(1)
}

func (m *MockMileageRepository) FindGlobalRate(ctx context.Context, year int) (*domain.MileageRate, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileageRate), args.Error(1)
}

func (m *MockMileageRepository) FindLatestRateForUser(ctx context.Context, userID string) (*domain.MileageRate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileageRate), args.Error(1)
}

func (m *MockMileageRepository) FindLatestGlobalRate(ctx context.Context) (*domain.MileageRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileageRate), args.Error(1)
}

func (m *MockMileageRepository) SaveRate(ctx context.Context, rate domain.MileageRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByNumber(ctx context.Context, userID, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, userID string, year int) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context, userID string, year int) (string, error) {
	args := m.Called(ctx, userID, year)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) MarkPaid(ctx context.Context, invoice domain.Invoice, income domain.Transaction) error {
	args := m.Called(ctx, invoice, income)
	return args.Error(0)
}

// --- Mock ContractorRepository ---
type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) SaveContractor(ctx context.Context, contractor domain.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}

func (m *MockContractorRepository) FindContractorByID(ctx context.Context, userID, contractorID string) (*domain.Contractor, error) {
	args := m.Called(ctx, userID, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *MockContractorRepository) ListContractors(ctx context.Context, userID string, activeOnly bool) ([]domain.Contractor, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contractor), args.Error(1)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindActiveProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepository) SaveProfile(ctx context.Context, profile domain.CompanyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
