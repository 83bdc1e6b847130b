package utils

import (
	"fmt"
	"time"

	"rentmart-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// RentalSpan is a rental duration broken into whole months, weeks and days.
// Both the start and end dates are counted.
type RentalSpan struct {
	Months int
	Weeks  int
	Days   int
}

// ParseDate parses a yyyy-mm-dd date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// InclusiveDays returns the day count of [start, end] with both ends counted.
// A same-day rental is 1 day.
func InclusiveDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("end date must not be before start date")
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// SpanBetween breaks the inclusive duration [start, end] into whole calendar
// months plus a week/day remainder. Calendar stepping keeps month lengths
// exact across leap years.
func SpanBetween(start, end time.Time) (RentalSpan, error) {
	if end.Before(start) {
		return RentalSpan{}, fmt.Errorf("end date must not be before start date")
	}

	// Exclusive upper bound: renting Jan 15 through Feb 14 is one full month.
	bound := end.AddDate(0, 0, 1)

	months := 0
	for start.AddDate(0, months+1, 0).Compare(bound) <= 0 {
		months++
	}

	rest := int(bound.Sub(start.AddDate(0, months, 0)).Hours() / 24)
	return RentalSpan{
		Months: months,
		Weeks:  rest / 7,
		Days:   rest % 7,
	}, nil
}

// RentalCostCents prices one unit of the product for the inclusive date range,
// using the product's rate unit. Coarser units round up; the day unit uses
// tiered month/week/day pricing. Missing rates fall back to the next finer one.
func RentalCostCents(p *domain.Product, startStr, endStr string) (int64, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return 0, err
	}

	span, err := SpanBetween(start, end)
	if err != nil {
		return 0, err
	}

	switch p.RateUnit {
	case domain.RateUnitHour:
		days, _ := InclusiveDays(start, end)
		return int64(days) * 24 * p.PricePerHourCents, nil
	case domain.RateUnitWeek:
		weeks := span.Weeks
		if span.Days > 0 {
			weeks++
		}
		return int64(span.Months)*monthlyRate(p) + int64(weeks)*weeklyRate(p), nil
	case domain.RateUnitMonth:
		months := span.Months
		if span.Weeks > 0 || span.Days > 0 {
			months++
		}
		if months < 1 {
			months = 1
		}
		return int64(months) * monthlyRate(p), nil
	case domain.RateUnitYear:
		months := span.Months
		if span.Weeks > 0 || span.Days > 0 {
			months++
		}
		years := months / 12
		months = months % 12
		if years == 0 && months == 0 {
			months = 1
		}
		return int64(years)*yearlyRate(p) + int64(months)*monthlyRate(p), nil
	default: // day unit, tiered
		return int64(span.Months)*monthlyRate(p) +
			int64(span.Weeks)*weeklyRate(p) +
			int64(span.Days)*p.PricePerDayCents, nil
	}
}

func weeklyRate(p *domain.Product) int64 {
	if p.PricePerWeekCents > 0 {
		return p.PricePerWeekCents
	}
	return 7 * p.PricePerDayCents
}

func monthlyRate(p *domain.Product) int64 {
	if p.PricePerMonthCents > 0 {
		return p.PricePerMonthCents
	}
	return 4 * weeklyRate(p)
}

func yearlyRate(p *domain.Product) int64 {
	if p.PricePerYearCents > 0 {
		return p.PricePerYearCents
	}
	return 12 * monthlyRate(p)
}
