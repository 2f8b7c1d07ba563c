package domain

import (
	"github.com/shopspring/decimal"
)

// SubCategoryTotal is one sub-category row inside a category group.
// Both the face-value and tax-adjusted sums are retained because net income
// (cash-basis P&L) and taxable income (after the meals/fuel policy) are
// different numbers shown side by side.
type SubCategoryTotal struct {
	Name          string          `json:"name"`
	ScheduleCLine string          `json:"scheduleCLine,omitempty"`
	FaceTotal     decimal.Decimal `json:"faceTotal"`
	AdjustedTotal decimal.Decimal `json:"adjustedTotal"`
}

// CategoryGroup aggregates one category's transactions.
type CategoryGroup struct {
	Name          string             `json:"name"`
	FaceTotal     decimal.Decimal    `json:"faceTotal"`
	AdjustedTotal decimal.Decimal    `json:"adjustedTotal"`
	SubCategories []SubCategoryTotal `json:"subCategories"`
}

// CategorySummaryReport is the category/sub-category breakdown for a user
// and year, with income and expense views and grand totals.
type CategorySummaryReport struct {
	Year                 int             `json:"year"` // 0 = all years
	TaxOnly              bool            `json:"taxOnly"`
	IncomeCategories     []CategoryGroup `json:"incomeCategories"`
	ExpenseCategories    []CategoryGroup `json:"expenseCategories"`
	IncomeTotal          decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal         decimal.Decimal `json:"expenseTotal"`         // Face value
	ExpenseAdjustedTotal decimal.Decimal `json:"expenseAdjustedTotal"` // After meals/fuel policy
	NetProfit            decimal.Decimal `json:"netProfit"`            // Income - face expenses
}

// ScheduleCLineTotal is a tax-adjusted sum for one Schedule C form line.
type ScheduleCLineTotal struct {
	Line    string          `json:"line"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// PartVRow details one "Other expenses" (line 27a) sub-category.
type PartVRow struct {
	SubCategoryID string          `json:"subCategoryID"`
	Name          string          `json:"name"`
	Total         decimal.Decimal `json:"total"`
}

// ScheduleCWorksheet carries the computed Schedule C form amounts.
// "Manual" lines stay zero here; they are entered on the form itself.
type ScheduleCWorksheet struct {
	Year int `json:"year"`

	// Part I - Income
	Line1 decimal.Decimal `json:"line1"` // Gross receipts or sales
	Line2 decimal.Decimal `json:"line2"` // Returns and allowances (manual)
	Line3 decimal.Decimal `json:"line3"` // line 1 - line 2
	Line4 decimal.Decimal `json:"line4"` // Cost of goods sold
	Line5 decimal.Decimal `json:"line5"` // line 3 - line 4
	Line6 decimal.Decimal `json:"line6"` // Other income (manual)
	Line7 decimal.Decimal `json:"line7"` // line 5 + line 6

	// Part II - Expenses
	Line8   decimal.Decimal `json:"line8"`   // Advertising
	Line9   decimal.Decimal `json:"line9"`   // Car & truck (mileage dollars)
	Line10  decimal.Decimal `json:"line10"`  // Commissions & fees
	Line11  decimal.Decimal `json:"line11"`  // Contract labor
	Line12  decimal.Decimal `json:"line12"`  // Depletion (manual)
	Line13  decimal.Decimal `json:"line13"`  // Depreciation (manual)
	Line14  decimal.Decimal `json:"line14"`  // Employee benefits (manual)
	Line15  decimal.Decimal `json:"line15"`  // Insurance
	Line16a decimal.Decimal `json:"line16a"` // Mortgage interest (manual)
	Line16b decimal.Decimal `json:"line16b"` // Other interest (manual)
	Line17  decimal.Decimal `json:"line17"`  // Legal & professional
	Line18  decimal.Decimal `json:"line18"`  // Office expense
	Line19  decimal.Decimal `json:"line19"`  // Pension plans (manual)
	Line20a decimal.Decimal `json:"line20a"` // Rent - vehicles/machinery
	Line20b decimal.Decimal `json:"line20b"` // Rent - other property
	Line21  decimal.Decimal `json:"line21"`  // Repairs & maintenance
	Line22  decimal.Decimal `json:"line22"`  // Supplies
	Line23  decimal.Decimal `json:"line23"`  // Taxes & licenses
	Line24  decimal.Decimal `json:"line24"`  // Travel + meals combined
	Line24a decimal.Decimal `json:"line24a"` // Travel
	Line24b decimal.Decimal `json:"line24b"` // Meals (50% deductible amount)
	Line25  decimal.Decimal `json:"line25"`  // Utilities
	Line26  decimal.Decimal `json:"line26"`  // Wages
	Line27a decimal.Decimal `json:"line27a"` // Other expenses (Part V)
	Line27b decimal.Decimal `json:"line27b"` // Reserved (manual)
	Line28  decimal.Decimal `json:"line28"`  // Total expenses
	Line29  decimal.Decimal `json:"line29"`  // Tentative profit
	Line30  decimal.Decimal `json:"line30"`  // Business use of home (manual)
	Line31  decimal.Decimal `json:"line31"`  // Net profit (loss)

	// Part V - other expenses detail
	Line48Total decimal.Decimal `json:"line48Total"`
	PartVRows   []PartVRow      `json:"partVRows"`

	TotalMiles     decimal.Decimal `json:"totalMiles"`
	MileageDollars decimal.Decimal `json:"mileageDollars"`
}

// InvoiceProfitability is the cost/income picture for one invoice/job.
type InvoiceProfitability struct {
	InvoiceNumber       string          `json:"invoiceNumber"`
	HasTransactions     bool            `json:"hasTransactions"`
	IncomeTotal         decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal        decimal.Decimal `json:"expenseTotal"` // Face value
	DeductibleExpenses  decimal.Decimal `json:"deductibleExpenses"`
	TotalMileageMiles   decimal.Decimal `json:"totalMileageMiles"`
	MileageDollars      decimal.Decimal `json:"mileageDollars"`
	EffectiveIncome     decimal.Decimal `json:"effectiveIncome"` // Income, or header amount fallback
	NetIncome           decimal.Decimal `json:"netIncome"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	TotalCost           decimal.Decimal `json:"totalCost"` // Expenses + mileage
}

// Form1099Summary is the computed 1099-NEC box data for one contractor and
// tax year.
type Form1099Summary struct {
	ContractorID    string          `json:"contractorID"`
	ContractorName  string          `json:"contractorName"`
	Year            int             `json:"year"`
	Box1Total       decimal.Decimal `json:"box1Total"`
	Box7StateIncome string          `json:"box7StateIncome,omitempty"` // Formatted, empty when not reportable
	State           string          `json:"state,omitempty"`
}
