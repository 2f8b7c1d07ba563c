package services

import (
	"context"
	"time"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/flightdeck-io/droneledger/internal/dto"
)

// TransactionService defines operations for managing ledger transactions.
type TransactionService interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// ApplyRecurring generates transactions for every due recurring
	// template as of the given date and returns how many were created.
	ApplyRecurring(ctx context.Context, userID string, asOf time.Time) (int, error)
}
