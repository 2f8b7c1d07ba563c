package services

import (
	"context"
	"time"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/flightdeck-io/droneledger/internal/dto"
)

// InvoiceService defines invoice lifecycle and profitability operations.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, year int) ([]domain.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, userID, invoiceNumber string) (*domain.Invoice, error)

	// NextNumber previews the number the next invoice of the year would
	// receive, without reserving it.
	NextNumber(ctx context.Context, userID string, year int) (string, error)

	// MarkPaid marks an invoice paid and creates its income transaction
	// atomically. Re-marking an already paid invoice fails with
	// apperrors.ErrAlreadyPaid and never double-posts income.
	MarkPaid(ctx context.Context, userID, invoiceID string, paymentDate *time.Time) (*domain.Transaction, error)

	// Profitability combines the invoice's transactions and taxable
	// mileage into net and taxable income. An invoice with no itemized
	// data degrades gracefully to its header amount.
	Profitability(ctx context.Context, userID, invoiceID string) (*domain.InvoiceProfitability, error)
}
