package dto

import (
	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// CreateContractorRequest registers a 1099-eligible payee. TIN accepts the
// last four digits only.
type CreateContractorRequest struct {
	FirstName    string `json:"firstName" binding:"omitempty,max=100"`
	LastName     string `json:"lastName" binding:"omitempty,max=100"`
	BusinessName string `json:"businessName" binding:"omitempty,max=150"`
	Email        string `json:"email" binding:"omitempty,email"`
	State        string `json:"state" binding:"omitempty,statecode"`
	TIN          string `json:"tin" binding:"omitempty,len=4,numeric"`
}

// ContractorResponse is the API representation of a contractor.
type ContractorResponse struct {
	ContractorID string `json:"contractorID"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	DisplayName  string `json:"displayName"`
	Email        string `json:"email,omitempty"`
	State        string `json:"state,omitempty"`
	TIN          string `json:"tin,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// ToContractorResponse maps a domain contractor to its API shape.
func ToContractorResponse(c domain.Contractor) ContractorResponse {
	return ContractorResponse{
		ContractorID: c.ContractorID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		BusinessName: c.BusinessName,
		DisplayName:  c.DisplayName(),
		Email:        c.Email,
		State:        c.NormalizedState(),
		TIN:          c.TIN,
		IsActive:     c.IsActive,
	}
}

// ToContractorListResponse maps a slice of contractors, never returning nil.
func ToContractorListResponse(contractors []domain.Contractor) []ContractorResponse {
	out := make([]ContractorResponse, 0, len(contractors))
	for _, c := range contractors {
		out = append(out, ToContractorResponse(c))
	}
	return out
}
