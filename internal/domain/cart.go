package domain

// CartSchemaVersion is the serialization version of the cart blob envelope.
// Blobs with a different version are discarded and replaced with an empty cart.
const CartSchemaVersion = 1

// Well-known cart store keys. The checkout flow moves data between them.
const (
	CartKeyCart     = "cart"
	CartKeyWishlist = "wishlist"
	CartKeyCheckout = "checkoutData"
	CartKeyOrder    = "orderData"
)

// CartItem is one product line in a cart, with a price snapshot taken
// when the item was added.
type CartItem struct {
	ProductID      int32  `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int32  `json:"quantity"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// Cart is the versioned envelope persisted in the cart store.
type Cart struct {
	Version int        `json:"version"`
	Items   []CartItem `json:"items"`
}

// NewCart returns an empty cart at the current schema version.
func NewCart() Cart {
	return Cart{Version: CartSchemaVersion, Items: []CartItem{}}
}

// SubtotalCents sums unit price x quantity over all lines.
func (c Cart) SubtotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}
