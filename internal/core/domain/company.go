package domain

import "strings"

// CompanyProfile is deployment-level configuration for the operating
// business. At most one profile is active at a time; the storage layer
// enforces this with a partial unique index, and the resolved profile is
// passed explicitly through function arguments instead of being re-queried
// inside deep call stacks.
type CompanyProfile struct {
	ProfileID   string `json:"profileID"`
	Slug        string `json:"slug"`
	LegalName   string `json:"legalName"`
	DisplayName string `json:"displayName,omitempty"`
	State       string `json:"state,omitempty"`
	TaxID       string `json:"taxID,omitempty"` // EIN displayed on invoices

	State1099ReportingEnabled bool `json:"state1099ReportingEnabled"`
	IsActive                  bool `json:"isActive"`

	DefaultNetDays int `json:"defaultNetDays"`
	AuditFields
}

// NameForDisplay prefers the trade name over the legal name.
func (p CompanyProfile) NameForDisplay() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(p.LegalName)
}
