package repositories

import (
	"context"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// TransactionFilter narrows transaction queries. Zero values mean "no
// filter" for that field; Year 0 means all years.
type TransactionFilter struct {
	Year          int
	TransType     domain.TransactionType
	InvoiceNumber string
	ContractorID  string
}

// TransactionRepository defines persistence operations for ledger
// transactions. List results carry joined Category/SubCategory metadata so
// aggregators can classify without extra round trips.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// ListRecurringTemplates returns the user's active templates.
	ListRecurringTemplates(ctx context.Context, userID string) ([]domain.RecurringTransaction, error)
	// SaveGeneratedTransaction persists a generated transaction and updates
	// the template's last_created marker in one database transaction.
	SaveGeneratedTransaction(ctx context.Context, txn domain.Transaction, template domain.RecurringTransaction) error
}
