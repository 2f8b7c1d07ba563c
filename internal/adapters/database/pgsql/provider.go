package pgsql

import (
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Transaction: NewPgxTransactionRepository(pool),
		Category:    NewPgxCategoryRepository(pool),
		Mileage:     NewPgxMileageRepository(pool),
		Invoice:     NewPgxInvoiceRepository(pool),
		Contractor:  NewPgxContractorRepository(pool),
		Company:     NewPgxCompanyRepository(pool),
	}
}
