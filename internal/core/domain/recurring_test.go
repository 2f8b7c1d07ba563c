package domain_test

import (
	"testing"
	"time"

	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueOn(t *testing.T) {
	tmpl := domain.RecurringTransaction{Day: 15, Active: true}

	assert.False(t, tmpl.DueOn(date(2025, time.March, 14)), "not due before the day")
	assert.True(t, tmpl.DueOn(date(2025, time.March, 15)), "due on the day")
	assert.True(t, tmpl.DueOn(date(2025, time.March, 20)), "still due after the day")

	inactive := tmpl
	inactive.Active = false
	assert.False(t, inactive.DueOn(date(2025, time.March, 20)))

	generated := tmpl
	last := date(2025, time.March, 15)
	generated.LastCreated = &last
	assert.False(t, generated.DueOn(date(2025, time.March, 20)), "already generated this month")
	assert.True(t, generated.DueOn(date(2025, time.April, 15)), "due again next month")
}

func TestDueOnShortMonthClamp(t *testing.T) {
	tmpl := domain.RecurringTransaction{Day: 31, Active: true}

	assert.True(t, tmpl.DueOn(date(2025, time.February, 28)), "day 31 clamps to Feb 28")
	assert.Equal(t, date(2025, time.February, 28), tmpl.ScheduledDate(date(2025, time.February, 28)))
	assert.Equal(t, date(2024, time.February, 29), tmpl.ScheduledDate(date(2024, time.February, 10)),
		"leap year clamps to Feb 29")
}
