package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry is Income or an Expense.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// TransportType identifies how a travel expense was incurred; it decides
// whether fuel expenses double-count against the mileage deduction.
type TransportType string

const (
	TransportPersonalVehicle TransportType = "personal_vehicle"
	TransportRentalCar       TransportType = "rental_car"
)

// Transaction represents one income or expense ledger entry. Immutable once
// created except for administrative correction; never auto-deleted.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owner (Not Null)
	TransType     TransactionType `json:"transType"`
	CategoryID    string          `json:"categoryID"`              // FK -> Category (Not Null)
	SubCategoryID string          `json:"subCategoryID,omitempty"` // FK -> SubCategory (Nullable)
	Amount        decimal.Decimal `json:"amount"`                  // Positive face value, 2dp
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"` // Links to an invoice/job
	ContractorID  string          `json:"contractorID,omitempty"`  // For 1099 purposes
	TransportType TransportType   `json:"transportType,omitempty"` // Expense-only
	RecurringID   string          `json:"recurringID,omitempty"`   // Generating template, if any
	AuditFields

	// Joined references, populated by repository queries that
	// select-related category metadata for aggregation.
	Category    *Category    `json:"category,omitempty"`
	SubCategory *SubCategory `json:"subCategory,omitempty"`
}

var mealsDeductibleFactor = decimal.NewFromFloat(0.50)

// DeductibleAmount is the single source of truth for per-transaction tax
// adjustment. Every aggregator must call it rather than re-implementing the
// meals/fuel rules, so the two policies can never drift apart between
// reports.
//
//   - meals sub-category: 50% deductible
//   - fuel sub-category on a personal vehicle: excluded entirely (the
//     standalone mileage deduction already covers it; deducting the fuel
//     too would double-count)
//   - everything else, including transactions with no sub-category: face
//     value
//
// Income transactions are never adjusted.
func (t Transaction) DeductibleAmount() decimal.Decimal {
	if t.TransType != Expense {
		return QuantizeMoney(t.Amount)
	}

	slug := ""
	if t.SubCategory != nil {
		slug = NormalizedSlug(t.SubCategory.Slug)
	}

	switch {
	case slug == SlugMeals:
		return MulMoney(t.Amount, mealsDeductibleFactor)
	case slug == SlugFuel && t.TransportType == TransportPersonalVehicle:
		return ZeroMoney()
	}
	return QuantizeMoney(t.Amount)
}

// IncludedInTaxReports is the unified inclusion rule shared by the
// category summary and the Schedule C aggregation. A transaction counts
// toward tax reports only when it has a sub-category flagged for tax
// reporting and that sub-category resolves to a Schedule C line. Both
// report views filter through this one method so their totals reconcile
// exactly.
func (t Transaction) IncludedInTaxReports() bool {
	return t.SubCategory != nil &&
		t.SubCategory.IncludeInTaxReports &&
		t.ResolvedScheduleCLine() != ""
}

// ResolvedScheduleCLine picks the Schedule C line for this transaction:
// the sub-category's line, falling back to the parent category's line.
// Empty means the transaction is not mapped to any form line.
func (t Transaction) ResolvedScheduleCLine() string {
	if t.SubCategory != nil {
		if line := strings.TrimSpace(t.SubCategory.ScheduleCLine); line != "" {
			return line
		}
	}
	if t.Category != nil {
		return strings.TrimSpace(t.Category.ScheduleCLine)
	}
	return ""
}
