package dto

import (
	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// SaveCompanyProfileRequest creates or replaces the active company profile.
type SaveCompanyProfileRequest struct {
	LegalName   string `json:"legalName" binding:"required,max=150"`
	DisplayName string `json:"displayName" binding:"omitempty,max=150"`
	State       string `json:"state" binding:"omitempty,statecode"`
	TaxID       string `json:"taxID" binding:"omitempty,max=20"`

	State1099ReportingEnabled bool `json:"state1099ReportingEnabled"`

	DefaultNetDays int `json:"defaultNetDays" binding:"omitempty,min=0,max=365"`
}

// CompanyProfileResponse is the API representation of the company profile.
type CompanyProfileResponse struct {
	ProfileID   string `json:"profileID"`
	Slug        string `json:"slug"`
	LegalName   string `json:"legalName"`
	DisplayName string `json:"displayName,omitempty"`
	State       string `json:"state,omitempty"`
	TaxID       string `json:"taxID,omitempty"`

	State1099ReportingEnabled bool `json:"state1099ReportingEnabled"`
	IsActive                  bool `json:"isActive"`

	DefaultNetDays int `json:"defaultNetDays"`
}

// ToCompanyProfileResponse maps a domain profile to its API shape.
func ToCompanyProfileResponse(p domain.CompanyProfile) CompanyProfileResponse {
	return CompanyProfileResponse{
		ProfileID:   p.ProfileID,
		Slug:        p.Slug,
		LegalName:   p.LegalName,
		DisplayName: p.DisplayName,
		State:       p.State,
		TaxID:       p.TaxID,

		State1099ReportingEnabled: p.State1099ReportingEnabled,
		IsActive:                  p.IsActive,

		DefaultNetDays: p.DefaultNetDays,
	}
}
