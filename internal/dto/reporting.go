package dto

import (
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubCategoryTotalResponse is one sub-category row in the category summary.
type SubCategoryTotalResponse struct {
	Name          string          `json:"name"`
	ScheduleCLine string          `json:"scheduleCLine,omitempty"`
	FaceTotal     decimal.Decimal `json:"faceTotal"`
	AdjustedTotal decimal.Decimal `json:"adjustedTotal"`
}

// CategoryGroupResponse is one category group in the summary.
type CategoryGroupResponse struct {
	Name          string                     `json:"name"`
	FaceTotal     decimal.Decimal            `json:"faceTotal"`
	AdjustedTotal decimal.Decimal            `json:"adjustedTotal"`
	SubCategories []SubCategoryTotalResponse `json:"subCategories"`
}

// CategorySummaryResponse is the category summary report response.
type CategorySummaryResponse struct {
	Year              int                     `json:"year"`
	TaxOnly           bool                    `json:"taxOnly"`
	IncomeCategories  []CategoryGroupResponse `json:"incomeCategories"`
	ExpenseCategories []CategoryGroupResponse `json:"expenseCategories"`
	Totals            struct {
		Income          decimal.Decimal `json:"income"`
		Expense         decimal.Decimal `json:"expense"`
		ExpenseAdjusted decimal.Decimal `json:"expenseAdjusted"`
		NetProfit       decimal.Decimal `json:"netProfit"`
	} `json:"totals"`
}

func toCategoryGroupResponses(groups []domain.CategoryGroup) []CategoryGroupResponse {
	out := make([]CategoryGroupResponse, 0, len(groups))
	for _, g := range groups {
		rg := CategoryGroupResponse{
			Name:          g.Name,
			FaceTotal:     g.FaceTotal,
			AdjustedTotal: g.AdjustedTotal,
		}
		for _, s := range g.SubCategories {
			rg.SubCategories = append(rg.SubCategories, SubCategoryTotalResponse{
				Name:          s.Name,
				ScheduleCLine: s.ScheduleCLine,
				FaceTotal:     s.FaceTotal,
				AdjustedTotal: s.AdjustedTotal,
			})
		}
		out = append(out, rg)
	}
	return out
}

// ToCategorySummaryResponse maps the domain report to its API shape.
func ToCategorySummaryResponse(r domain.CategorySummaryReport) CategorySummaryResponse {
	resp := CategorySummaryResponse{
		Year:              r.Year,
		TaxOnly:           r.TaxOnly,
		IncomeCategories:  toCategoryGroupResponses(r.IncomeCategories),
		ExpenseCategories: toCategoryGroupResponses(r.ExpenseCategories),
	}
	resp.Totals.Income = r.IncomeTotal
	resp.Totals.Expense = r.ExpenseTotal
	resp.Totals.ExpenseAdjusted = r.ExpenseAdjustedTotal
	resp.Totals.NetProfit = r.NetProfit
	return resp
}

// ScheduleCWorksheetResponse is the Schedule C worksheet response. The
// domain struct is already JSON-shaped, so it is embedded directly.
type ScheduleCWorksheetResponse struct {
	domain.ScheduleCWorksheet
}

// Form1099Response is the contractor 1099 box summary response.
type Form1099Response struct {
	ContractorID    string          `json:"contractorID"`
	ContractorName  string          `json:"contractorName"`
	Year            int             `json:"year"`
	Box1Total       decimal.Decimal `json:"box1Total"`
	Box7StateIncome string          `json:"box7StateIncome,omitempty"`
	State           string          `json:"state,omitempty"`
}

// ToForm1099Response maps the domain summary.
func ToForm1099Response(s domain.Form1099Summary) Form1099Response {
	return Form1099Response{
		ContractorID:    s.ContractorID,
		ContractorName:  s.ContractorName,
		Year:            s.Year,
		Box1Total:       s.Box1Total,
		Box7StateIncome: s.Box7StateIncome,
		State:           s.State,
	}
}
