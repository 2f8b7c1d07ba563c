package domain_test

import (
	"testing"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func expenseWith(amount string, sub *domain.SubCategory, transport domain.TransportType) domain.Transaction {
	return domain.Transaction{
		TransType:     domain.Expense,
		Amount:        decimal.RequireFromString(amount),
		TransportType: transport,
		SubCategory:   sub,
	}
}

func TestDeductibleAmountMeals(t *testing.T) {
	meals := &domain.SubCategory{Name: "Meals", Slug: "meals", IncludeInTaxReports: true}

	cases := []struct {
		amount string
		want   string
	}{
		{"10.00", "5"},
		{"10.01", "5.01"},
		{"33.33", "16.67"},
		{"0.01", "0.01"},
	}
	for _, tc := range cases {
		txn := expenseWith(tc.amount, meals, "")
		got := txn.DeductibleAmount()
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"meals %s deductible = %s, want %s", tc.amount, got, tc.want)
	}
}

func TestDeductibleAmountFuel(t *testing.T) {
	fuel := &domain.SubCategory{Name: "Fuel", Slug: "fuel", IncludeInTaxReports: true}

	personal := expenseWith("45.00", fuel, domain.TransportPersonalVehicle)
	assert.True(t, personal.DeductibleAmount().IsZero(),
		"personal-vehicle fuel must be fully excluded")

	rental := expenseWith("45.00", fuel, domain.TransportRentalCar)
	assert.True(t, rental.DeductibleAmount().Equal(decimal.RequireFromString("45.00")),
		"rental-car fuel deducts at face value")

	noTransport := expenseWith("45.00", fuel, "")
	assert.True(t, noTransport.DeductibleAmount().Equal(decimal.RequireFromString("45.00")),
		"fuel without a transport type deducts at face value")
}

func TestDeductibleAmountDefaults(t *testing.T) {
	plain := expenseWith("120.50", &domain.SubCategory{Name: "Insurance", Slug: "insurance"}, "")
	assert.True(t, plain.DeductibleAmount().Equal(decimal.RequireFromString("120.50")))

	noSub := expenseWith("75.00", nil, "")
	assert.True(t, noSub.DeductibleAmount().Equal(decimal.RequireFromString("75.00")))

	income := domain.Transaction{
		TransType:   domain.Income,
		Amount:      decimal.RequireFromString("80.00"),
		SubCategory: &domain.SubCategory{Name: "Meals", Slug: "meals"},
	}
	assert.True(t, income.DeductibleAmount().Equal(decimal.RequireFromString("80.00")),
		"income is never adjusted, even on a meals sub-category")
}

func TestDeductibleAmountSlugMatching(t *testing.T) {
	// The rule matches on slug, so a renamed display name keeps the
	// treatment and a weirdly-cased slug still matches.
	renamed := expenseWith("10.00", &domain.SubCategory{Name: "Business Meals & Entertainment", Slug: " MEALS "}, "")
	assert.True(t, renamed.DeductibleAmount().Equal(decimal.RequireFromString("5")))
}

func TestResolvedScheduleCLine(t *testing.T) {
	cat := &domain.Category{Name: "Travel", ScheduleCLine: "24a"}

	withOverride := domain.Transaction{
		Category:    cat,
		SubCategory: &domain.SubCategory{Name: "Meals", ScheduleCLine: "24b"},
	}
	assert.Equal(t, "24b", withOverride.ResolvedScheduleCLine())

	fallback := domain.Transaction{
		Category:    cat,
		SubCategory: &domain.SubCategory{Name: "Lodging"},
	}
	assert.Equal(t, "24a", fallback.ResolvedScheduleCLine())

	unmapped := domain.Transaction{}
	assert.Equal(t, "", unmapped.ResolvedScheduleCLine())
}

func TestIncludedInTaxReports(t *testing.T) {
	cat := &domain.Category{ScheduleCLine: "22"}

	cases := []struct {
		name string
		txn  domain.Transaction
		want bool
	}{
		{
			name: "flagged with resolvable line",
			txn: domain.Transaction{
				Category:    cat,
				SubCategory: &domain.SubCategory{IncludeInTaxReports: true},
			},
			want: true,
		},
		{
			name: "no sub-category",
			txn:  domain.Transaction{Category: cat},
			want: false,
		},
		{
			name: "flag off",
			txn: domain.Transaction{
				Category:    cat,
				SubCategory: &domain.SubCategory{IncludeInTaxReports: false},
			},
			want: false,
		},
		{
			name: "no resolvable line",
			txn: domain.Transaction{
				SubCategory: &domain.SubCategory{IncludeInTaxReports: true},
			},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.txn.IncludedInTaxReports())
		})
	}
}
