package services

import (
	"context"
	"errors"
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

const fallbackNetDays = 30

// invoiceService implements portssvc.InvoiceService.
type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepository
	txnRepo      portsrepo.TransactionRepository
	categoryRepo portsrepo.CategoryRepository
	mileageRepo  portsrepo.MileageRepository
	mileage      portssvc.MileageService
	company      portssvc.CompanyService
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepository,
	txnRepo portsrepo.TransactionRepository,
	categoryRepo portsrepo.CategoryRepository,
	mileageRepo portsrepo.MileageRepository,
	mileage portssvc.MileageService,
	company portssvc.CompanyService,
) portssvc.InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		mileageRepo:  mileageRepo,
		mileage:      mileage,
		company:      company,
	}
}

var _ portssvc.InvoiceService = (*invoiceService)(nil)

// CreateInvoice persists a new invoice. The amount is always derived from
// the line items and the number is assigned by the repository's sequence
// when the header carries none.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	due := date.AddDate(0, 0, s.netDays(ctx))
	if req.Due != "" {
		due, err = time.Parse(dateLayout, req.Due)
		if err != nil {
			return nil, fmt.Errorf("%w: due date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	invoiceID := uuid.NewString()
	inv := domain.Invoice{
		InvoiceID: invoiceID,
		UserID:    userID,
		ClientID:  req.ClientID,
		EventName: req.EventName,
		Location:  req.Location,
		Date:      date,
		Due:       due,
		Status:    domain.InvoiceUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	for _, item := range req.Items {
		if item.Qty.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item price cannot be negative", apperrors.ErrValidation)
		}
		inv.Items = append(inv.Items, domain.InvoiceItem{
			ItemID:        uuid.NewString(),
			InvoiceID:     invoiceID,
			Description:   item.Description,
			Qty:           item.Qty,
			Price:         item.Price,
			SubCategoryID: item.SubCategoryID,
		})
	}
	inv.Amount = inv.ItemsTotal()

	saved, err := s.invoiceRepo.SaveInvoice(ctx, inv)
	if err != nil {
		s.LogError(ctx, err, "failed to save invoice", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return saved, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
}

func (s *invoiceService) GetInvoiceByNumber(ctx context.Context, userID, invoiceNumber string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByNumber(ctx, userID, invoiceNumber)
}

// NextNumber previews the number the next invoice of the year would
// receive. The preview takes no lock, so the eventual assignment can
// differ when invoices are created concurrently.
func (s *invoiceService) NextNumber(ctx context.Context, userID string, year int) (string, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, userID, year)
	if err != nil {
		return "", fmt.Errorf("failed to resolve next invoice number: %w", err)
	}
	return number, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string, year int) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// MarkPaid marks the invoice paid and posts its income transaction in one
// atomic repository call. An already paid invoice is refused with
// apperrors.ErrAlreadyPaid rather than silently skipped, so a double
// submission can never double-post income.
func (s *invoiceService) MarkPaid(ctx context.Context, userID, invoiceID string, paymentDate *time.Time) (*domain.Transaction, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.IsPaid() {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyPaid, inv.InvoiceNumber)
	}

	paidOn := time.Now()
	if paymentDate != nil {
		paidOn = *paymentDate
	}

	amount := inv.Amount
	if len(inv.Items) > 0 {
		amount = inv.ItemsTotal()
	}

	subCategoryID, categoryID, err := s.incomeCategoryForItems(ctx, userID, inv.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	income := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		TransType:     domain.Income,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Amount:        amount,
		Description:   fmt.Sprintf("Payment for invoice %s", inv.InvoiceNumber),
		Date:          paidOn,
		InvoiceNumber: inv.InvoiceNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	paid := *inv
	paid.Amount = amount
	paid.PaidDate = &paidOn
	paid.Status = domain.InvoicePaid
	paid.LastUpdatedAt = now
	paid.LastUpdatedBy = userID

	if err := s.invoiceRepo.MarkPaid(ctx, paid, income); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPaid) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyPaid, inv.InvoiceNumber)
		}
		s.LogError(ctx, err, "failed to mark invoice paid", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	s.LogInfo(ctx, "invoice marked paid",
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("transaction_id", income.TransactionID))
	return &income, nil
}

// incomeCategoryForItems picks the income category for the payment
// transaction from the first line item that carries a sub-category.
func (s *invoiceService) incomeCategoryForItems(ctx context.Context, userID string, items []domain.InvoiceItem) (subCategoryID, categoryID string, err error) {
	for _, item := range items {
		if item.SubCategoryID == "" {
			continue
		}
		sub, err := s.categoryRepo.FindSubCategoryByID(ctx, userID, item.SubCategoryID)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve item sub-category: %w", err)
		}
		return sub.SubCategoryID, sub.CategoryID, nil
	}
	return "", "", fmt.Errorf("%w: no line item carries a sub-category to classify the payment", apperrors.ErrValidation)
}

// Profitability combines the invoice's linked transactions and taxable
// mileage into the cost and income picture. An invoice with no itemized
// income degrades to its header amount so a quick quote-style invoice
// still shows a number.
func (s *invoiceService) Profitability(ctx context.Context, userID, invoiceID string) (*domain.InvoiceProfitability, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{
		InvoiceNumber: inv.InvoiceNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice transactions: %w", err)
	}

	p := &domain.InvoiceProfitability{
		InvoiceNumber:      inv.InvoiceNumber,
		HasTransactions:    len(txns) > 0,
		IncomeTotal:        domain.ZeroMoney(),
		ExpenseTotal:       domain.ZeroMoney(),
		DeductibleExpenses: domain.ZeroMoney(),
	}

	incomeCount := 0
	for _, t := range txns {
		if t.TransType == domain.Income {
			p.IncomeTotal = domain.AddMoney(p.IncomeTotal, t.Amount)
			incomeCount++
			continue
		}
		p.ExpenseTotal = domain.AddMoney(p.ExpenseTotal, t.Amount)
		p.DeductibleExpenses = domain.AddMoney(p.DeductibleExpenses, t.DeductibleAmount())
	}

	entries, err := s.mileageRepo.ListEntries(ctx, userID, portsrepo.MileageFilter{
		InvoiceNumber: inv.InvoiceNumber,
		MileageType:   domain.MileageTaxable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice mileage: %w", err)
	}

	miles := decimal.Zero
	for _, entry := range entries {
		miles = miles.Add(entry.Miles())
	}
	p.TotalMileageMiles = miles.Round(1)

	p.MileageDollars, err = s.mileage.TotalDollars(ctx, userID, entries)
	if err != nil {
		return nil, err
	}

	p.EffectiveIncome = p.IncomeTotal
	if incomeCount == 0 {
		p.EffectiveIncome = domain.QuantizeMoney(inv.Amount)
	}

	p.TotalCost = domain.AddMoney(p.ExpenseTotal, p.MileageDollars)
	// Net income is cash-basis: income minus face expenses. Mileage is not
	// money spent, so it reduces taxable income and total cost only.
	p.NetIncome = domain.QuantizeMoney(p.EffectiveIncome.Sub(p.ExpenseTotal))
	p.TaxableIncome = domain.QuantizeMoney(
		p.EffectiveIncome.Sub(p.DeductibleExpenses).Sub(p.MileageDollars))
	return p, nil
}

func (s *invoiceService) netDays(ctx context.Context) int {
	profile, err := s.company.ActiveProfile(ctx)
	if err != nil || profile == nil || profile.DefaultNetDays <= 0 {
		return fallbackNetDays
	}
	return profile.DefaultNetDays
}
