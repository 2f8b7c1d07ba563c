package dto

import (
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest is one billed line on a new invoice.
type CreateInvoiceItemRequest struct {
	Description   string          `json:"description" binding:"required,max=255"`
	Qty           decimal.Decimal `json:"qty" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	SubCategoryID string          `json:"subCategoryID"`
}

// CreateInvoiceRequest creates an invoice with its line items. The invoice
// number is generated when left blank; the amount is always derived from
// the items.
type CreateInvoiceRequest struct {
	ClientID  string                     `json:"clientID" binding:"required"`
	EventName string                     `json:"eventName" binding:"omitempty,max=255"`
	Location  string                     `json:"location" binding:"omitempty,max=255"`
	Date      string                     `json:"date" binding:"required"` // YYYY-MM-DD
	Due       string                     `json:"due"`                     // Defaults to date + net days
	Items     []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// MarkPaidRequest optionally overrides the payment date.
type MarkPaidRequest struct {
	PaymentDate string `json:"paymentDate"` // YYYY-MM-DD, defaults to today
}

// InvoiceItemResponse is the API representation of one line item.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse is the API representation of an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	ClientID      string                `json:"clientID"`
	EventName     string                `json:"eventName,omitempty"`
	Amount        decimal.Decimal       `json:"amount"`
	Date          string                `json:"date"`
	Due           string                `json:"due"`
	PaidDate      string                `json:"paidDate,omitempty"`
	Status        string                `json:"status"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

// ToInvoiceResponse maps a domain invoice to its API shape.
func ToInvoiceResponse(inv domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		EventName:     inv.EventName,
		Amount:        inv.Amount,
		Date:          inv.Date.Format("2006-01-02"),
		Due:           inv.Due.Format("2006-01-02"),
		Status:        string(inv.Status),
	}
	if inv.PaidDate != nil {
		resp.PaidDate = inv.PaidDate.Format("2006-01-02")
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ItemID:      item.ItemID,
			Description: item.Description,
			Qty:         item.Qty,
			Price:       item.Price,
			LineTotal:   item.LineTotal(),
		})
	}
	return resp
}

// InvoiceProfitabilityResponse is the API shape of the profitability
// calculation.
type InvoiceProfitabilityResponse struct {
	InvoiceNumber      string          `json:"invoiceNumber"`
	HasTransactions    bool            `json:"hasTransactions"`
	IncomeTotal        decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal       decimal.Decimal `json:"expenseTotal"`
	DeductibleExpenses decimal.Decimal `json:"deductibleExpenses"`
	TotalMileageMiles  decimal.Decimal `json:"totalMileageMiles"`
	MileageDollars     decimal.Decimal `json:"mileageDollars"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	TaxableIncome      decimal.Decimal `json:"taxableIncome"`
	TotalCost          decimal.Decimal `json:"totalCost"`
}

// ToInvoiceProfitabilityResponse maps the domain calculation.
func ToInvoiceProfitabilityResponse(p domain.InvoiceProfitability) InvoiceProfitabilityResponse {
	return InvoiceProfitabilityResponse{
		InvoiceNumber:      p.InvoiceNumber,
		HasTransactions:    p.HasTransactions,
		IncomeTotal:        p.IncomeTotal,
		ExpenseTotal:       p.ExpenseTotal,
		DeductibleExpenses: p.DeductibleExpenses,
		TotalMileageMiles:  p.TotalMileageMiles,
		MileageDollars:     p.MileageDollars,
		NetIncome:          p.NetIncome,
		TaxableIncome:      p.TaxableIncome,
		TotalCost:          p.TotalCost,
	}
}
