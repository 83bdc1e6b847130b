package service

import (
	"context"
	"encoding/json"
	"testing"

	"rentmart-backend/internal/cartstore"
	"rentmart-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func newCartFixture() (*MockProductRepo, *cartstore.MemoryStore, CartService) {
	productRepo := new(MockProductRepo)
	store := cartstore.NewMemoryStore()
	return productRepo, store, NewCartService(store, productRepo)
}

func rentableProduct() *domain.Product {
	return &domain.Product{
		ID:               1,
		OwnerID:          55,
		Name:             "Excavator",
		RateUnit:         domain.RateUnitDay,
		PricePerDayCents: 5000,
		Available:        true,
		Quantity:         3,
	}
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	const userID = int32(7)

	t.Run("Snapshots rental price", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		// 3 inclusive days at the daily rate
		cart, err := svc.AddItem(ctx, userID, 1, 2, "2026-09-01", "2026-09-03")
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, int64(15000), cart.Items[0].UnitPriceCents)
		assert.Equal(t, int32(2), cart.Items[0].Quantity)
	})

	t.Run("Merges quantity for existing line", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		_, err := svc.AddItem(ctx, userID, 1, 1, "2026-09-01", "2026-09-03")
		assert.NoError(t, err)
		cart, err := svc.AddItem(ctx, userID, 1, 2, "2026-09-01", "2026-09-03")
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, int32(3), cart.Items[0].Quantity)
	})

	t.Run("Unavailable product rejected", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		out := rentableProduct()
		out.Quantity = 0
		productRepo.On("GetByID", ctx, int32(1)).Return(out, nil)

		_, err := svc.AddItem(ctx, userID, 1, 1, "2026-09-01", "2026-09-03")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "product", vErr.Field)
	})

	t.Run("Invalid dates rejected", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		_, err := svc.AddItem(ctx, userID, 1, 1, "2026-09-03", "2026-09-01")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "rental_dates", vErr.Field)
	})
}

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()
	const userID = int32(7)

	t.Run("Empty for new user", func(t *testing.T) {
		_, _, svc := newCartFixture()
		cart, err := svc.GetCart(ctx, userID)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Equal(t, domain.CartSchemaVersion, cart.Version)
	})

	t.Run("Malformed blob falls back to empty cart", func(t *testing.T) {
		_, store, svc := newCartFixture()
		assert.NoError(t, store.Set(ctx, userID, domain.CartKeyCart, []byte("{not json")))

		cart, err := svc.GetCart(ctx, userID)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Unknown schema version falls back to empty cart", func(t *testing.T) {
		_, store, svc := newCartFixture()
		assert.NoError(t, store.Set(ctx, userID, domain.CartKeyCart, []byte(`{"version":99,"items":[{"product_id":1,"quantity":1}]}`)))

		cart, err := svc.GetCart(ctx, userID)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	const userID = int32(7)

	t.Run("Quantity below one removes the line", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		_, err := svc.AddItem(ctx, userID, 1, 2, "2026-09-01", "2026-09-03")
		assert.NoError(t, err)

		cart, err := svc.UpdateQuantity(ctx, userID, 1, 0)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Update missing line", func(t *testing.T) {
		_, _, svc := newCartFixture()
		_, err := svc.UpdateQuantity(ctx, userID, 42, 3)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Clear empties the cart", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		_, err := svc.AddItem(ctx, userID, 1, 2, "2026-09-01", "2026-09-03")
		assert.NoError(t, err)
		assert.NoError(t, svc.ClearCart(ctx, userID))

		cart, err := svc.GetCart(ctx, userID)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestCartService_Wishlist(t *testing.T) {
	ctx := context.Background()
	const userID = int32(7)

	t.Run("Add is idempotent", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		_, err := svc.AddToWishlist(ctx, userID, 1)
		assert.NoError(t, err)
		list, err := svc.AddToWishlist(ctx, userID, 1)
		assert.NoError(t, err)
		assert.Len(t, list.Items, 1)
	})

	t.Run("Move transfers the line to the cart", func(t *testing.T) {
		productRepo, _, svc := newCartFixture()
		productRepo.On("GetByID", ctx, int32(1)).Return(rentableProduct(), nil)

		_, err := svc.AddToWishlist(ctx, userID, 1)
		assert.NoError(t, err)

		cart, err := svc.MoveToCart(ctx, userID, 1, 1, "2026-09-01", "2026-09-03")
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)

		list, err := svc.GetWishlist(ctx, userID)
		assert.NoError(t, err)
		assert.Empty(t, list.Items)
	})

	t.Run("Move requires the item to be wishlisted", func(t *testing.T) {
		_, _, svc := newCartFixture()
		_, err := svc.MoveToCart(ctx, userID, 42, 1, "2026-09-01", "2026-09-03")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCartService_CheckoutData(t *testing.T) {
	ctx := context.Background()
	const userID = int32(7)

	t.Run("Round trips checkout blob", func(t *testing.T) {
		_, _, svc := newCartFixture()
		blob := json.RawMessage(`{"step":2,"address":{"city":"Austin"}}`)

		assert.NoError(t, svc.SaveCheckoutData(ctx, userID, blob))
		got, err := svc.GetCheckoutData(ctx, userID)
		assert.NoError(t, err)
		assert.JSONEq(t, string(blob), string(got))
	})

	t.Run("Invalid JSON rejected", func(t *testing.T) {
		_, _, svc := newCartFixture()
		err := svc.SaveCheckoutData(ctx, userID, json.RawMessage(`{"step":`))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "checkout_data", verr.Field)
	})

	t.Run("Missing blobs read as null", func(t *testing.T) {
		_, _, svc := newCartFixture()

		checkout, err := svc.GetCheckoutData(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "null", string(checkout))

		orderData, err := svc.GetOrderData(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "null", string(orderData))
	})

	t.Run("Blobs are scoped per user", func(t *testing.T) {
		_, _, svc := newCartFixture()
		assert.NoError(t, svc.SaveCheckoutData(ctx, userID, json.RawMessage(`{"step":1}`)))

		other, err := svc.GetCheckoutData(ctx, userID+1)
		assert.NoError(t, err)
		assert.Equal(t, "null", string(other))
	})
}
