package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTransaction is a template that generates one ledger transaction
// per month on a fixed day. LastCreated guards against double generation
// within the same month.
type RecurringTransaction struct {
	RecurringID   string          `json:"recurringID"`
	UserID        string          `json:"userID"`
	TransType     TransactionType `json:"transType"`
	CategoryID    string          `json:"categoryID"`
	SubCategoryID string          `json:"subCategoryID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Day           int             `json:"day"` // Day of month, 1..31
	Active        bool            `json:"active"`
	LastCreated   *time.Time      `json:"lastCreated,omitempty"`
	AuditFields
}

// DueOn reports whether the template should generate a transaction as of
// the given date: it is active, the day of month has been reached (clamped
// to short months), and nothing was generated for this month yet.
func (r RecurringTransaction) DueOn(asOf time.Time) bool {
	if !r.Active {
		return false
	}
	day := r.Day
	if last := lastDayOfMonth(asOf); day > last {
		day = last
	}
	if asOf.Day() < day {
		return false
	}
	if r.LastCreated != nil &&
		r.LastCreated.Year() == asOf.Year() && r.LastCreated.Month() == asOf.Month() {
		return false
	}
	return true
}

// ScheduledDate is the date the generated transaction should carry for the
// month of asOf.
func (r RecurringTransaction) ScheduledDate(asOf time.Time) time.Time {
	day := r.Day
	if last := lastDayOfMonth(asOf); day > last {
		day = last
	}
	return time.Date(asOf.Year(), asOf.Month(), day, 0, 0, 0, 0, asOf.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 1, -1).Day()
}
