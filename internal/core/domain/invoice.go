package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
	InvoicePaid    InvoiceStatus = "Paid"
	InvoicePartial InvoiceStatus = "Partial"
)

// Invoice is the header record. Amount is always derived from line items,
// never hand-entered. Transactions and mileage entries link to it through
// the shared InvoiceNumber reference.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	UserID        string          `json:"userID"`
	InvoiceNumber string          `json:"invoiceNumber"` // YYNNNN, auto-generated if blank
	ClientID      string          `json:"clientID"`
	EventName     string          `json:"eventName,omitempty"`
	Location      string          `json:"location,omitempty"`
	Amount        decimal.Decimal `json:"amount"` // Sum of line items, 2dp
	Date          time.Time       `json:"date"`
	Due           time.Time       `json:"due"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields

	Items []InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is one billed line. The sub-category ties the line to a
// category so marking the invoice paid knows which income category the
// resulting transaction belongs to.
type InvoiceItem struct {
	ItemID        string          `json:"itemID"`
	InvoiceID     string          `json:"invoiceID"`
	Description   string          `json:"description"`
	Qty           decimal.Decimal `json:"qty"`
	Price         decimal.Decimal `json:"price"`
	SubCategoryID string          `json:"subCategoryID,omitempty"`

	SubCategory *SubCategory `json:"subCategory,omitempty"`
	Category    *Category    `json:"category,omitempty"`
}

// LineTotal is qty * price quantized to currency precision.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return MulMoney(i.Qty, i.Price)
}

// ItemsTotal derives the invoice amount from its line items.
func (inv Invoice) ItemsTotal() decimal.Decimal {
	total := ZeroMoney()
	for _, item := range inv.Items {
		total = AddMoney(total, item.LineTotal())
	}
	return total
}

// IsPaid reports whether the invoice has been fully paid.
func (inv Invoice) IsPaid() bool {
	return inv.PaidDate != nil || inv.Status == InvoicePaid
}

// Year is the invoice-date year, used for rate lookups and numbering.
func (inv Invoice) Year() int {
	return inv.Date.Year()
}
