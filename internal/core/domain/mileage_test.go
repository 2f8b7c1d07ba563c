package domain_test

import (
	"testing"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMilesFromOdometer(t *testing.T) {
	entry := domain.MileageEntry{
		Begin: decimal.RequireFromString("1000.0"),
		End:   decimal.RequireFromString("1042.3"),
	}
	assert.True(t, entry.Miles().Equal(decimal.RequireFromString("42.3")))
}

func TestMilesTotalTakesPrecedence(t *testing.T) {
	entry := domain.MileageEntry{
		Begin:    decimal.RequireFromString("1000.0"),
		End:      decimal.RequireFromString("1042.3"),
		Total:    decimal.RequireFromString("55.5"),
		HasTotal: true,
	}
	assert.True(t, entry.Miles().Equal(decimal.RequireFromString("55.5")))
}

func TestMilesNegativeClampsToZero(t *testing.T) {
	entry := domain.MileageEntry{
		Begin: decimal.RequireFromString("500.0"),
		End:   decimal.RequireFromString("400.0"),
	}
	assert.True(t, entry.Miles().IsZero())
}
