package domain

import "strings"

// Contractor is a 1099-eligible payee. Expense transactions tagged with its
// ContractorID sum into Box 1 of the 1099-NEC for a calendar year.
type Contractor struct {
	ContractorID string `json:"contractorID"`
	UserID       string `json:"userID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BusinessName string `json:"businessName,omitempty"`
	Email        string `json:"email,omitempty"`
	State        string `json:"state,omitempty"` // 2-letter state code
	TIN          string `json:"tin,omitempty"`   // Last-4 only; full TIN never stored
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// DisplayName prefers the business name over the personal name.
func (c Contractor) DisplayName() string {
	if name := strings.TrimSpace(c.BusinessName); name != "" {
		return name
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizedState returns the trimmed upper-case state code.
func (c Contractor) NormalizedState() string {
	return strings.ToUpper(strings.TrimSpace(c.State))
}

// statesRequireBox7StateIncome lists the states that require 1099-NEC
// Box 7 state-income reporting when the company has state reporting
// enabled.
var statesRequireBox7StateIncome = map[string]bool{
	"CA": true,
	"DE": true,
	"KS": true,
	"MA": true,
	"MI": true,
	"NJ": true,
	"OR": true,
	"PA": true,
	"RI": true,
	"WI": true,
}

// StateRequiresBox7 reports whether a state code participates in Box 7
// state-income reporting.
func StateRequiresBox7(state string) bool {
	return statesRequireBox7StateIncome[strings.ToUpper(strings.TrimSpace(state))]
}
