package domain

import (
	"regexp"
	"strings"
)

// CategoryType indicates the default accounting nature of a category.
type CategoryType string

const (
	CategoryIncome  CategoryType = "Income"
	CategoryExpense CategoryType = "Expense"
)

// Category is a top-level grouping for transactions. The optional
// ScheduleCLine maps the whole category to a Schedule C form line
// (e.g. "8", "9", "27a") unless a sub-category overrides it.
type Category struct {
	CategoryID    string       `json:"categoryID"`
	UserID        string       `json:"userID"`
	Name          string       `json:"name"`
	CategoryType  CategoryType `json:"categoryType"`
	ScheduleCLine string       `json:"scheduleCLine,omitempty"`
	Slug          string       `json:"slug,omitempty"`
	AuditFields
}

// SubCategory refines a Category and carries the tax-relevant flags.
// Business rules match on Slug, never on the display name, so renaming a
// sub-category can never break tax logic.
type SubCategory struct {
	SubCategoryID       string `json:"subCategoryID"`
	UserID              string `json:"userID"`
	CategoryID          string `json:"categoryID"`
	Name                string `json:"name"`
	Slug                string `json:"slug,omitempty"`
	ScheduleCLine       string `json:"scheduleCLine,omitempty"`
	IncludeInTaxReports bool   `json:"includeInTaxReports"`
	IncludeInPLReports  bool   `json:"includeInPLReports"`
	AuditFields
}

// Slugs with special tax treatment. These identify sub-categories stably
// across renames.
const (
	SlugMeals         = "meals"
	SlugFuel          = "fuel"
	SlugEquipmentSale = "equipment-sale"
)

var slugStripRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a display name into a lowercase, hyphenated slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizedSlug trims and lowercases a stored slug for rule matching.
func NormalizedSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
