package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// transactionService implements portssvc.TransactionService.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, categoryRepo portsrepo.CategoryRepository) portssvc.TransactionService {
	return &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionService = (*transactionService)(nil)

// CreateTransaction validates and persists one ledger entry. When only a
// sub-category is supplied the parent category is derived from it; when
// both are supplied they must agree.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	categoryID := req.CategoryID
	var subCategory *domain.SubCategory
	if req.SubCategoryID != "" {
		subCategory, err = s.categoryRepo.FindSubCategoryByID(ctx, userID, req.SubCategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve sub-category: %w", err)
		}
		if categoryID == "" {
			categoryID = subCategory.CategoryID
		} else if categoryID != subCategory.CategoryID {
			return nil, fmt.Errorf("%w: sub-category does not belong to category", apperrors.ErrValidation)
		}
	}
	if categoryID == "" {
		return nil, fmt.Errorf("%w: a category or sub-category is required", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	if req.TransportType != "" && domain.TransactionType(req.TransType) != domain.Expense {
		return nil, fmt.Errorf("%w: transport type only applies to expenses", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		TransType:     domain.TransactionType(req.TransType),
		CategoryID:    categoryID,
		SubCategoryID: req.SubCategoryID,
		Amount:        domain.QuantizeMoney(req.Amount),
		Description:   req.Description,
		Date:          date,
		InvoiceNumber: req.InvoiceNumber,
		ContractorID:  req.ContractorID,
		TransportType: domain.TransportType(req.TransportType),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Category:    category,
		SubCategory: subCategory,
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save transaction", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if _, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.LogInfo(ctx, "transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ApplyRecurring generates one transaction per due template. Each
// generation updates the template's last-created marker in the same
// database transaction, so a crashed run never double-posts on retry.
func (s *transactionService) ApplyRecurring(ctx context.Context, userID string, asOf time.Time) (int, error) {
	templates, err := s.txnRepo.ListRecurringTemplates(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	generated := 0
	now := time.Now()
	for _, tmpl := range templates {
		if !tmpl.DueOn(asOf) {
			continue
		}

		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			TransType:     tmpl.TransType,
			CategoryID:    tmpl.CategoryID,
			SubCategoryID: tmpl.SubCategoryID,
			Amount:        domain.QuantizeMoney(tmpl.Amount),
			Description:   tmpl.Description,
			Date:          tmpl.ScheduledDate(asOf),
			RecurringID:   tmpl.RecurringID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		marked := tmpl
		lastCreated := asOf
		marked.LastCreated = &lastCreated

		if err := s.txnRepo.SaveGeneratedTransaction(ctx, txn, marked); err != nil {
			s.LogError(ctx, err, "failed to generate recurring transaction",
				slog.String("recurring_id", tmpl.RecurringID))
			return generated, fmt.Errorf("failed to apply recurring template %s: %w", tmpl.RecurringID, err)
		}
		generated++
	}

	if generated > 0 {
		s.LogInfo(ctx, "recurring transactions applied",
			slog.Int("generated", generated), slog.String("user_id", userID))
	}
	return generated, nil
}
