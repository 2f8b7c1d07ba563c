package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

const transactionSelectColumns = `
	t.transaction_id, t.user_id, t.trans_type,
	t.category_id, COALESCE(t.sub_category_id, ''),
	t.amount, t.description, t.date,
	COALESCE(t.invoice_number, ''), COALESCE(t.contractor_id, ''),
	COALESCE(t.transport_type, ''), COALESCE(t.recurring_id, ''),
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
	c.name, c.category_type, COALESCE(c.schedule_c_line, ''), COALESCE(c.slug, ''),
	sc.sub_category_id, sc.name, COALESCE(sc.slug, ''),
	COALESCE(sc.schedule_c_line, ''), sc.include_in_tax_reports, sc.include_in_pl_reports`

const transactionFromClause = `
	FROM transactions t
	JOIN categories c ON c.category_id = t.category_id
	LEFT JOIN sub_categories sc ON sc.sub_category_id = t.sub_category_id`

// scanTransaction scans one joined row, populating the Category and
// SubCategory references the aggregators classify on.
func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	var cat domain.Category
	var subID *string
	var subName, subSlug, subLine *string
	var subTax, subPL *bool

	err := row.Scan(
		&t.TransactionID, &t.UserID, &t.TransType,
		&t.CategoryID, &t.SubCategoryID,
		&t.Amount, &t.Description, &t.Date,
		&t.InvoiceNumber, &t.ContractorID,
		&t.TransportType, &t.RecurringID,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		&cat.Name, &cat.CategoryType, &cat.ScheduleCLine, &cat.Slug,
		&subID, &subName, &subSlug,
		&subLine, &subTax, &subPL,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	cat.CategoryID = t.CategoryID
	cat.UserID = t.UserID
	t.Category = &cat

	if subID != nil {
		sub := domain.SubCategory{
			SubCategoryID: *subID,
			UserID:        t.UserID,
			CategoryID:    t.CategoryID,
			Name:          deref(subName),
			Slug:          deref(subSlug),
			ScheduleCLine: deref(subLine),
		}
		if subTax != nil {
			sub.IncludeInTaxReports = *subTax
		}
		if subPL != nil {
			sub.IncludeInPLReports = *subPL
		}
		t.SubCategory = &sub
	}
	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, user_id, trans_type, category_id, sub_category_id,
		amount, description, date, invoice_number, contractor_id, transport_type, recurring_id,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''),
		NULLIF($11, ''), NULLIF($12, ''), $13, $14, $15, $16);
`

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	_, err := r.pool.Exec(ctx, insertTransactionQuery,
		txn.TransactionID, txn.UserID, txn.TransType, txn.CategoryID, txn.SubCategoryID,
		txn.Amount, txn.Description, txn.Date, txn.InvoiceNumber, txn.ContractorID,
		string(txn.TransportType), txn.RecurringID,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT` + transactionSelectColumns + transactionFromClause + `
		WHERE t.user_id = $1 AND t.transaction_id = $2;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT` + transactionSelectColumns + transactionFromClause + `
		WHERE t.user_id = $1`
	args := []any{userID}

	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM t.date) = $%d", len(args))
	}
	if filter.TransType != "" {
		args = append(args, filter.TransType)
		query += fmt.Sprintf(" AND t.trans_type = $%d", len(args))
	}
	if filter.InvoiceNumber != "" {
		args = append(args, filter.InvoiceNumber)
		query += fmt.Sprintf(" AND t.invoice_number = $%d", len(args))
	}
	if filter.ContractorID != "" {
		args = append(args, filter.ContractorID)
		query += fmt.Sprintf(" AND t.contractor_id = $%d", len(args))
	}
	query += " ORDER BY t.date, t.created_at;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2;`,
		userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) ListRecurringTemplates(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	query := `
		SELECT recurring_id, user_id, trans_type, category_id, COALESCE(sub_category_id, ''),
			amount, description, day, active, last_created,
			created_at, created_by, last_updated_at, last_updated_by
		FROM recurring_transactions
		WHERE user_id = $1 AND active
		ORDER BY day;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring templates: %w", err)
	}
	defer rows.Close()

	templates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RecurringTransaction, error) {
		var tmpl domain.RecurringTransaction
		err := row.Scan(
			&tmpl.RecurringID, &tmpl.UserID, &tmpl.TransType, &tmpl.CategoryID, &tmpl.SubCategoryID,
			&tmpl.Amount, &tmpl.Description, &tmpl.Day, &tmpl.Active, &tmpl.LastCreated,
			&tmpl.CreatedAt, &tmpl.CreatedBy, &tmpl.LastUpdatedAt, &tmpl.LastUpdatedBy,
		)
		return tmpl, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring templates: %w", err)
	}
	return templates, nil
}

// SaveGeneratedTransaction inserts the generated transaction and advances
// the template's last_created marker in one database transaction, so a
// retried run cannot post the same month twice.
func (r *PgxTransactionRepository) SaveGeneratedTransaction(ctx context.Context, txn domain.Transaction, template domain.RecurringTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, insertTransactionQuery,
		txn.TransactionID, txn.UserID, txn.TransType, txn.CategoryID, txn.SubCategoryID,
		txn.Amount, txn.Description, txn.Date, txn.InvoiceNumber, txn.ContractorID,
		string(txn.TransportType), txn.RecurringID,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert generated transaction: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE recurring_transactions SET last_created = $1, last_updated_at = $2, last_updated_by = $3
		 WHERE recurring_id = $4 AND user_id = $5;`,
		template.LastCreated, txn.LastUpdatedAt, txn.LastUpdatedBy,
		template.RecurringID, template.UserID)
	if err != nil {
		return fmt.Errorf("failed to update recurring template %s: %w", template.RecurringID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit generated transaction: %w", err)
	}
	return nil
}
