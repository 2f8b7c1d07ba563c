package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MileageType distinguishes deductible trips from trips a client already
// paid for. Only Taxable entries feed the mileage deduction; Reimbursed
// entries are tracked but valued at zero dollars.
type MileageType string

const (
	MileageTaxable    MileageType = "Taxable"
	MileageReimbursed MileageType = "Reimbursed"
)

// MileageEntry is one trip record: either begin/end odometer readings or a
// precomputed total distance.
type MileageEntry struct {
	MileageID     string          `json:"mileageID"`
	UserID        string          `json:"userID"`
	Date          time.Time       `json:"date"`
	Begin         decimal.Decimal `json:"begin"` // Odometer start; zero when Total is used
	End           decimal.Decimal `json:"end"`   // Odometer end
	Total         decimal.Decimal `json:"total"` // Precomputed distance, takes precedence
	HasTotal      bool            `json:"hasTotal"`
	MileageType   MileageType     `json:"mileageType"`
	ClientID      string          `json:"clientID,omitempty"`
	EventID       string          `json:"eventID,omitempty"`
	VehicleID     string          `json:"vehicleID,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	AuditFields
}

// Miles derives the trip distance: Total when present, otherwise End-Begin
// clamped to be non-negative. One decimal place, matching odometer
// granularity.
func (m MileageEntry) Miles() decimal.Decimal {
	if m.HasTotal {
		return m.Total.Round(1)
	}
	miles := m.End.Sub(m.Begin)
	if miles.IsNegative() {
		return decimal.Zero
	}
	return miles.Round(1)
}

// MileageRate is a per-mile dollar rate scoped to a (user, year) pair.
// A nil/empty UserID marks the global default for that year. Rates are
// year-scoped so historical reports stay correct when the rate changes.
type MileageRate struct {
	RateID string          `json:"rateID"`
	UserID string          `json:"userID,omitempty"` // Empty = global default
	Year   int             `json:"year"`
	Rate   decimal.Decimal `json:"rate"` // Dollars per mile, e.g. 0.7000
}
