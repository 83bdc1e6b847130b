package domain

type DiscountKind string

const (
	DiscountKindFlat    DiscountKind = "FLAT"
	DiscountKindPercent DiscountKind = "PERCENT"
)

type Coupon struct {
	ID   int32        `json:"id"`
	Code string       `json:"code"`
	Kind DiscountKind `json:"kind"`
	// Cents for FLAT, whole percent (0-100) for PERCENT.
	Value     int64  `json:"value"`
	Active    bool   `json:"active"`
	CreatedOn string `json:"created_on"`
}

// DiscountCents computes the discount this coupon yields on a subtotal.
// The discount never exceeds the subtotal.
func (c *Coupon) DiscountCents(subtotalCents int64) int64 {
	if c == nil || !c.Active {
		return 0
	}
	var d int64
	switch c.Kind {
	case DiscountKindFlat:
		d = c.Value
	case DiscountKindPercent:
		d = subtotalCents * c.Value / 100
	}
	if d < 0 {
		d = 0
	}
	if d > subtotalCents {
		d = subtotalCents
	}
	return d
}
