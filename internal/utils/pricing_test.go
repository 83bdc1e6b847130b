package utils

import (
	"testing"
	"time"

	"rentmart-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 2024, date.Year())
		assert.Equal(t, time.January, date.Month())
		assert.Equal(t, 15, date.Day())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
	})
}

func TestInclusiveDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("bad test date %s: %v", s, err)
		}
		return d
	}

	t.Run("Same day counts as one", func(t *testing.T) {
		days, err := InclusiveDays(day("2024-03-10"), day("2024-03-10"))
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("Full week", func(t *testing.T) {
		days, err := InclusiveDays(day("2024-01-01"), day("2024-01-07"))
		assert.NoError(t, err)
		assert.Equal(t, 7, days)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := InclusiveDays(day("2024-01-07"), day("2024-01-01"))
		assert.Error(t, err)
	})
}

func TestSpanBetween(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := ParseDate(s)
		return d
	}

	tests := []struct {
		name   string
		start  string
		end    string
		months int
		weeks  int
		days   int
	}{
		{"Single day", "2024-01-15", "2024-01-15", 0, 0, 1},
		{"One week", "2024-01-01", "2024-01-07", 0, 1, 0},
		{"Ten days", "2024-01-01", "2024-01-10", 0, 1, 3},
		{"Exactly one month", "2024-01-15", "2024-02-14", 1, 0, 0},
		{"Month plus remainder", "2024-01-15", "2024-02-24", 1, 1, 3},
		{"February non-leap", "2023-02-01", "2023-02-28", 1, 0, 0},
		{"February leap", "2024-02-01", "2024-02-29", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := SpanBetween(day(tt.start), day(tt.end))
			assert.NoError(t, err)
			assert.Equal(t, tt.months, span.Months, "months")
			assert.Equal(t, tt.weeks, span.Weeks, "weeks")
			assert.Equal(t, tt.days, span.Days, "days")
		})
	}

	t.Run("End before start", func(t *testing.T) {
		_, err := SpanBetween(day("2024-02-01"), day("2024-01-01"))
		assert.Error(t, err)
	})
}

func TestRentalCostCents(t *testing.T) {
	product := &domain.Product{
		RateUnit:           domain.RateUnitDay,
		PricePerHourCents:  100,
		PricePerDayCents:   5000,
		PricePerWeekCents:  30000,
		PricePerMonthCents: 100000,
	}

	t.Run("Day unit tiered pricing", func(t *testing.T) {
		// 10 inclusive days = 1 week + 3 days
		cost, err := RentalCostCents(product, "2024-01-01", "2024-01-10")
		assert.NoError(t, err)
		assert.Equal(t, int64(30000+3*5000), cost)
	})

	t.Run("Day unit whole month", func(t *testing.T) {
		cost, err := RentalCostCents(product, "2024-01-15", "2024-02-14")
		assert.NoError(t, err)
		assert.Equal(t, int64(100000), cost)
	})

	t.Run("Hour unit bills full days", func(t *testing.T) {
		hourly := *product
		hourly.RateUnit = domain.RateUnitHour
		cost, err := RentalCostCents(&hourly, "2024-01-01", "2024-01-02")
		assert.NoError(t, err)
		assert.Equal(t, int64(2*24*100), cost)
	})

	t.Run("Month unit rounds up", func(t *testing.T) {
		monthly := *product
		monthly.RateUnit = domain.RateUnitMonth
		cost, err := RentalCostCents(&monthly, "2024-01-01", "2024-02-10")
		assert.NoError(t, err)
		assert.Equal(t, int64(2*100000), cost)
	})

	t.Run("Week unit rounds up partial week", func(t *testing.T) {
		weekly := *product
		weekly.RateUnit = domain.RateUnitWeek
		cost, err := RentalCostCents(&weekly, "2024-01-01", "2024-01-10")
		assert.NoError(t, err)
		assert.Equal(t, int64(2*30000), cost)
	})

	t.Run("Weekly rate falls back to daily", func(t *testing.T) {
		dayOnly := &domain.Product{
			RateUnit:         domain.RateUnitDay,
			PricePerDayCents: 5000,
		}
		// 1 week + 0 days at 7x daily
		cost, err := RentalCostCents(dayOnly, "2024-01-01", "2024-01-07")
		assert.NoError(t, err)
		assert.Equal(t, int64(7*5000), cost)
	})

	t.Run("Invalid dates", func(t *testing.T) {
		_, err := RentalCostCents(product, "not-a-date", "2024-01-10")
		assert.Error(t, err)

		_, err = RentalCostCents(product, "2024-01-10", "2024-01-01")
		assert.Error(t, err)
	})
}
