package repositories

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// InvoiceRepository defines persistence operations for invoices and their
// line items.
type InvoiceRepository interface {
	// SaveInvoice persists the header and all line items in one database
	// transaction, assigning the next invoice number under a row lock when
	// the header carries none.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
	FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	FindInvoiceByNumber(ctx context.Context, userID, invoiceNumber string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, year int) ([]domain.Invoice, error)

	// NextInvoiceNumber returns the next YYNNNN number for the year,
	// starting at YY0100. Callers inside a SaveInvoice transaction hold
	// the sequence lock until commit.
	NextInvoiceNumber(ctx context.Context, userID string, year int) (string, error)

	// MarkPaid atomically updates the invoice (amount, paid date, status)
	// and inserts the linked income transaction. A failure in either write
	// rolls back both, so an invoice can never be marked paid without its
	// income record or vice versa.
	MarkPaid(ctx context.Context, invoice domain.Invoice, income domain.Transaction) error
}
