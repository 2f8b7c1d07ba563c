package dto

import (
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMileageEntryRequest records one trip. Either total, or begin and
// end must be supplied.
type CreateMileageEntryRequest struct {
	Date          string           `json:"date" binding:"required"` // YYYY-MM-DD
	Begin         *decimal.Decimal `json:"begin"`
	End           *decimal.Decimal `json:"end"`
	Total         *decimal.Decimal `json:"total"`
	MileageType   string           `json:"mileageType" binding:"required,oneof=Taxable Reimbursed"`
	ClientID      string           `json:"clientID"`
	EventID       string           `json:"eventID"`
	VehicleID     string           `json:"vehicleID"`
	InvoiceNumber string           `json:"invoiceNumber" binding:"omitempty,max=25"`
}

// MileageEntryResponse is the API representation of a trip.
type MileageEntryResponse struct {
	MileageID     string          `json:"mileageID"`
	Date          string          `json:"date"`
	Miles         decimal.Decimal `json:"miles"`
	MileageType   string          `json:"mileageType"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	VehicleID     string          `json:"vehicleID,omitempty"`
}

// SaveMileageRateRequest sets the per-mile rate for a year. Global rates
// apply to every user without a rate of their own.
type SaveMileageRateRequest struct {
	Year   int             `json:"year" binding:"required,min=2000,max=2100"`
	Rate   decimal.Decimal `json:"rate" binding:"required"`
	Global bool            `json:"global"`
}

// MileageRateResponse reports the resolved per-mile rate for a year.
type MileageRateResponse struct {
	Year int             `json:"year"`
	Rate decimal.Decimal `json:"rate"`
}

// ToMileageEntryResponse maps a domain entry to its API shape.
func ToMileageEntryResponse(m domain.MileageEntry) MileageEntryResponse {
	return MileageEntryResponse{
		MileageID:     m.MileageID,
		Date:          m.Date.Format("2006-01-02"),
		Miles:         m.Miles(),
		MileageType:   string(m.MileageType),
		InvoiceNumber: m.InvoiceNumber,
		VehicleID:     m.VehicleID,
	}
}

// ToMileageListResponse maps a slice of entries.
func ToMileageListResponse(entries []domain.MileageEntry) []MileageEntryResponse {
	out := make([]MileageEntryResponse, 0, len(entries))
	for _, m := range entries {
		out = append(out, ToMileageEntryResponse(m))
	}
	return out
}
