package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxInvoiceRepository creates a new repository for invoice data.
func NewPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{pool: pool}
}

// SaveInvoice persists the header and all line items in one database
// transaction. When the header carries no number, the next YYNNNN number
// is assigned under an advisory lock so concurrent creates cannot collide.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if invoice.InvoiceNumber == "" {
		number, err := nextInvoiceNumber(ctx, tx, invoice.UserID, invoice.Year())
		if err != nil {
			return nil, err
		}
		invoice.InvoiceNumber = number
	}

	headerQuery := `
		INSERT INTO invoices (invoice_id, user_id, invoice_number, client_id, event_name, location,
			amount, date, due, paid_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		invoice.InvoiceID, invoice.UserID, invoice.InvoiceNumber, invoice.ClientID,
		invoice.EventName, invoice.Location,
		invoice.Amount, invoice.Date, invoice.Due, invoice.PaidDate, invoice.Status,
		invoice.CreatedAt, invoice.CreatedBy, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice %s: %w", invoice.InvoiceNumber, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (item_id, invoice_id, description, qty, price, sub_category_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''));
	`
	for _, item := range invoice.Items {
		batch.Queue(itemQuery,
			item.ItemID, invoice.InvoiceID, item.Description, item.Qty, item.Price, item.SubCategoryID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert items for invoice %s: %w", invoice.InvoiceNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return &invoice, nil
}

// nextInvoiceNumber computes the next number in the YYNNNN sequence for
// the year, starting at YY0100. The per-user advisory lock serializes
// concurrent creates for the duration of the enclosing transaction.
func nextInvoiceNumber(ctx context.Context, tx pgx.Tx, userID string, year int) (string, error) {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || ':invoice_number'));`, userID)
	if err != nil {
		return "", fmt.Errorf("failed to take invoice number lock: %w", err)
	}

	prefix := fmt.Sprintf("%02d", year%100)
	var last string
	err = tx.QueryRow(ctx,
		`SELECT invoice_number FROM invoices
		 WHERE user_id = $1 AND invoice_number LIKE $2 || '%'
		 ORDER BY invoice_number DESC LIMIT 1;`,
		userID, prefix).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		last = ""
	} else if err != nil {
		return "", fmt.Errorf("failed to find last invoice number: %w", err)
	}
	return nextNumberInSequence(prefix, last)
}

// maxInvoiceSequence is the highest per-year counter the YYNNNN format can
// hold. Past it a fifth digit would break both the fixed width and the
// lexicographic max scan, so the sequence refuses to wrap.
const maxInvoiceSequence = 9999

// nextNumberInSequence computes the successor of the highest YYNNNN number
// for a year prefix. An empty last number starts the year at YY0100.
func nextNumberInSequence(prefix, last string) (string, error) {
	if last == "" {
		return prefix + "0100", nil
	}
	if len(last) != len(prefix)+4 {
		return "", fmt.Errorf("malformed invoice number %q in sequence", last)
	}
	seq, err := strconv.Atoi(last[len(prefix):])
	if err != nil {
		return "", fmt.Errorf("malformed invoice number %q in sequence: %w", last, err)
	}
	if seq >= maxInvoiceSequence {
		return "", fmt.Errorf("invoice number sequence exhausted for prefix %s", prefix)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

// NextInvoiceNumber previews the next number outside a create, e.g. for
// display on a draft form.
func (r *PgxInvoiceRepository) NextInvoiceNumber(ctx context.Context, userID string, year int) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	return nextInvoiceNumber(ctx, tx, userID, year)
}

const invoiceSelect = `
	SELECT invoice_id, user_id, invoice_number, client_id, COALESCE(event_name, ''), COALESCE(location, ''),
		amount, date, due, paid_date, status, created_at, created_by, last_updated_at, last_updated_by
	FROM invoices`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID, &inv.UserID, &inv.InvoiceNumber, &inv.ClientID, &inv.EventName, &inv.Location,
		&inv.Amount, &inv.Date, &inv.Due, &inv.PaidDate, &inv.Status,
		&inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	return inv, err
}

func (r *PgxInvoiceRepository) loadItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT item_id, invoice_id, description, qty, price, COALESCE(sub_category_id, '')
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY item_id;`,
		invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InvoiceItem, error) {
		var item domain.InvoiceItem
		err := row.Scan(&item.ItemID, &item.InvoiceID, &item.Description, &item.Qty, &item.Price, &item.SubCategoryID)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice items: %w", err)
	}
	return items, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	query := invoiceSelect + ` WHERE user_id = $1 AND invoice_id = $2;`
	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, userID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	inv.Items, err = r.loadItems(ctx, inv.InvoiceID)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, userID, invoiceNumber string) (*domain.Invoice, error) {
	query := invoiceSelect + ` WHERE user_id = $1 AND invoice_number = $2;`
	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, userID, invoiceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceNumber, err)
	}
	inv.Items, err = r.loadItems(ctx, inv.InvoiceID)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, year int) ([]domain.Invoice, error) {
	query := invoiceSelect + ` WHERE user_id = $1`
	args := []any{userID}
	if year != 0 {
		args = append(args, year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM date) = $%d", len(args))
	}
	query += " ORDER BY invoice_number;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return invoices, nil
}

// MarkPaid updates the invoice and inserts the linked income transaction
// in one database transaction. The guard on paid_date IS NULL makes the
// update a no-op when another request already paid the invoice, in which
// case apperrors.ErrAlreadyPaid is returned instead of double-posting.
func (r *PgxInvoiceRepository) MarkPaid(ctx context.Context, invoice domain.Invoice, income domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE invoices
		 SET amount = $1, paid_date = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		 WHERE user_id = $6 AND invoice_id = $7 AND paid_date IS NULL;`,
		invoice.Amount, invoice.PaidDate, invoice.Status,
		invoice.LastUpdatedAt, invoice.LastUpdatedBy,
		invoice.UserID, invoice.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceNumber, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM invoices WHERE user_id = $1 AND invoice_id = $2);`,
			invoice.UserID, invoice.InvoiceID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check invoice %s: %w", invoice.InvoiceNumber, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyPaid
	}

	_, err = tx.Exec(ctx, insertTransactionQuery,
		income.TransactionID, income.UserID, income.TransType, income.CategoryID, income.SubCategoryID,
		income.Amount, income.Description, income.Date, income.InvoiceNumber, income.ContractorID,
		string(income.TransportType), income.RecurringID,
		income.CreatedAt, income.CreatedBy, income.LastUpdatedAt, income.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment transaction for invoice %s: %w", invoice.InvoiceNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mark-paid for invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return nil
}
