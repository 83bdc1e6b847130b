package domain

// RateUnit is the rental billing granularity of a product.
type RateUnit string

const (
	RateUnitHour  RateUnit = "hour"
	RateUnitDay   RateUnit = "day"
	RateUnitWeek  RateUnit = "week"
	RateUnitMonth RateUnit = "month"
	RateUnitYear  RateUnit = "year"
)

type Product struct {
	ID          int32  `json:"id"`
	OwnerID     int32  `json:"owner_id"`
	Owner       *User  `json:"owner,omitempty"` // Populated when fetching product details
	Name        string `json:"name"`
	ImageKey    string `json:"image_key"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// Rate card in cents. A zero rate means the unit is not offered;
	// the yearly rate falls back to 12x the monthly rate when unset.
	PricePerHourCents  int64    `json:"price_per_hour_cents"`
	PricePerDayCents   int64    `json:"price_per_day_cents"`
	PricePerWeekCents  int64    `json:"price_per_week_cents"`
	PricePerMonthCents int64    `json:"price_per_month_cents"`
	PricePerYearCents  int64    `json:"price_per_year_cents"`
	RateUnit           RateUnit `json:"rate_unit"`
	Available          bool     `json:"available"`
	Quantity           int32    `json:"quantity"`
	CreatedOn          string   `json:"created_on"`
	UpdatedOn          string   `json:"updated_on"`
}

// Rentable reports whether the product can currently be added to a cart.
func (p *Product) Rentable() bool {
	return p.Available && p.Quantity > 0
}

// UnitPriceCents returns the price for the product's own rate unit.
func (p *Product) UnitPriceCents() int64 {
	switch p.RateUnit {
	case RateUnitHour:
		return p.PricePerHourCents
	case RateUnitDay:
		return p.PricePerDayCents
	case RateUnitWeek:
		return p.PricePerWeekCents
	case RateUnitMonth:
		return p.PricePerMonthCents
	case RateUnitYear:
		if p.PricePerYearCents > 0 {
			return p.PricePerYearCents
		}
		return 12 * p.PricePerMonthCents
	default:
		return p.PricePerDayCents
	}
}
