package domain

type OrderStatus string

const (
	OrderStatusQuotation OrderStatus = "QUOTATION"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusReserved  OrderStatus = "RESERVED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusLate      OrderStatus = "LATE"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps a raw string onto the OrderStatus enumeration.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusQuotation, OrderStatusConfirmed, OrderStatusReserved,
		OrderStatusDelivered, OrderStatusReturned, OrderStatusLate, OrderStatusCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type DeliveryMethod string

const (
	DeliveryMethodStandard  DeliveryMethod = "standard"
	DeliveryMethodExpress   DeliveryMethod = "express"
	DeliveryMethodScheduled DeliveryMethod = "scheduled"
)

// ParseDeliveryMethod maps a raw string onto the DeliveryMethod enumeration.
func ParseDeliveryMethod(s string) (DeliveryMethod, bool) {
	switch DeliveryMethod(s) {
	case DeliveryMethodStandard, DeliveryMethodExpress, DeliveryMethodScheduled:
		return DeliveryMethod(s), true
	default:
		return "", false
	}
}

// orderTransitions is the allowed dashboard status transition table.
// RETURNED and CANCELLED are terminal. LATE is set only by the overdue job.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusQuotation: {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusReserved, OrderStatusCancelled},
	OrderStatusReserved:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusReturned, OrderStatusLate},
	OrderStatusLate:      {OrderStatusReturned},
}

// CanTransition reports whether an order may move from its current status to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type RentalOrder struct {
	ID         int32  `json:"id"`
	Reference  string `json:"reference"`
	ProductID  int32  `json:"product_id"`
	CustomerID int32  `json:"customer_id"`
	EndUserID  int32  `json:"end_user_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	// Price snapshot fields, captured from the cart line at submission time.
	// All totals are derived from these, not from live product prices.
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int32  `json:"quantity"`

	SubtotalCents       int64          `json:"subtotal_cents"`
	DiscountCents       int64          `json:"discount_cents"`
	DeliveryChargeCents int64          `json:"delivery_charge_cents"`
	TaxCents            int64          `json:"tax_cents"`
	TotalCents          int64          `json:"total_cents"`
	DepositCents        int64          `json:"deposit_cents"`
	LateFeeCents        int64          `json:"late_fee_cents"`
	CouponCode          string         `json:"coupon_code,omitempty"`
	DeliveryMethod      DeliveryMethod `json:"delivery_method"`
	DeliveryAddress     Address        `json:"delivery_address"`
	BillingAddress      Address        `json:"billing_address"`
	Status              OrderStatus    `json:"status"`
	PaymentStatus       PaymentStatus  `json:"payment_status"`
	CreatedOn           string         `json:"created_on"`
	UpdatedOn           string         `json:"updated_on"`
}
