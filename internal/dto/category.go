package dto

import (
	"github.com/flightdeck-io/droneledger/internal/core/domain"
)

// CreateCategoryRequest creates a top-level category.
type CreateCategoryRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	CategoryType  string `json:"categoryType" binding:"required,oneof=Income Expense"`
	ScheduleCLine string `json:"scheduleCLine" binding:"omitempty,max=5"`
}

// CreateSubCategoryRequest creates a sub-category under an existing
// category. The category ID comes from the URL path; the slug defaults to
// a normalized form of the name when left blank.
type CreateSubCategoryRequest struct {
	CategoryID          string `json:"-"`
	Name                string `json:"name" binding:"required,max=100"`
	Slug                string `json:"slug" binding:"omitempty,max=100"`
	ScheduleCLine       string `json:"scheduleCLine" binding:"omitempty,max=5"`
	IncludeInTaxReports bool   `json:"includeInTaxReports"`
	IncludeInPLReports  bool   `json:"includeInPLReports"`
}

// SubCategoryResponse is the API representation of a sub-category.
type SubCategoryResponse struct {
	SubCategoryID       string `json:"subCategoryID"`
	CategoryID          string `json:"categoryID"`
	Name                string `json:"name"`
	Slug                string `json:"slug,omitempty"`
	ScheduleCLine       string `json:"scheduleCLine,omitempty"`
	IncludeInTaxReports bool   `json:"includeInTaxReports"`
	IncludeInPLReports  bool   `json:"includeInPLReports"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID    string `json:"categoryID"`
	Name          string `json:"name"`
	CategoryType  string `json:"categoryType"`
	ScheduleCLine string `json:"scheduleCLine,omitempty"`
	Slug          string `json:"slug,omitempty"`
}

// ToCategoryResponse maps a domain category to its API shape.
func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		CategoryType:  string(c.CategoryType),
		ScheduleCLine: c.ScheduleCLine,
		Slug:          c.Slug,
	}
}

// ToSubCategoryResponse maps a domain sub-category to its API shape.
func ToSubCategoryResponse(s domain.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		SubCategoryID:       s.SubCategoryID,
		CategoryID:          s.CategoryID,
		Name:                s.Name,
		Slug:                s.Slug,
		ScheduleCLine:       s.ScheduleCLine,
		IncludeInTaxReports: s.IncludeInTaxReports,
		IncludeInPLReports:  s.IncludeInPLReports,
	}
}
