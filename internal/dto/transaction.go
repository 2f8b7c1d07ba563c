package dto

import (
	"time"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for creating one ledger entry.
type CreateTransactionRequest struct {
	TransType     string          `json:"transType" binding:"required,oneof=Income Expense"`
	CategoryID    string          `json:"categoryID"`
	SubCategoryID string          `json:"subCategoryID"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required,max=255"`
	Date          string          `json:"date" binding:"required"` // YYYY-MM-DD
	InvoiceNumber string          `json:"invoiceNumber" binding:"omitempty,max=25"`
	ContractorID  string          `json:"contractorID"`
	TransportType string          `json:"transportType" binding:"omitempty,oneof=personal_vehicle rental_car"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	TransType     string          `json:"transType"`
	CategoryID    string          `json:"categoryID"`
	CategoryName  string          `json:"categoryName,omitempty"`
	SubCategoryID string          `json:"subCategoryID,omitempty"`
	SubCategory   string          `json:"subCategory,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Deductible    decimal.Decimal `json:"deductible"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	ContractorID  string          `json:"contractorID,omitempty"`
	TransportType string          `json:"transportType,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse maps a domain transaction to its API shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		TransType:     string(t.TransType),
		CategoryID:    t.CategoryID,
		SubCategoryID: t.SubCategoryID,
		Amount:        t.Amount,
		Deductible:    t.DeductibleAmount(),
		Description:   t.Description,
		Date:          t.Date.Format("2006-01-02"),
		InvoiceNumber: t.InvoiceNumber,
		ContractorID:  t.ContractorID,
		TransportType: string(t.TransportType),
		CreatedAt:     t.CreatedAt,
	}
	if t.Category != nil {
		resp.CategoryName = t.Category.Name
	}
	if t.SubCategory != nil {
		resp.SubCategory = t.SubCategory.Name
	}
	return resp
}

// ToTransactionListResponse maps a slice of transactions.
func ToTransactionListResponse(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// ApplyRecurringResponse reports how many transactions a recurring run
// generated.
type ApplyRecurringResponse struct {
	AsOf      string `json:"asOf"`
	Generated int    `json:"generated"`
}
