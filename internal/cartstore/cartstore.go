// Package cartstore persists per-user blobs (cart, wishlist, checkout and
// order hand-off data) behind an injectable key-value interface. The blobs
// are versioned JSON; anything unreadable decodes to an empty cart rather
// than failing the caller.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
)

// ErrNotFound is returned by Get when no blob exists for the key.
var ErrNotFound = errors.New("cart blob not found")

// Store is the key-value blob store. Keys are the fixed names in domain
// (cart, wishlist, checkoutData, orderData), scoped per user.
type Store interface {
	Get(ctx context.Context, userID int32, key string) ([]byte, error)
	Set(ctx context.Context, userID int32, key string, blob []byte) error
	Clear(ctx context.Context, userID int32, key string) error
}

// LoadCart reads and decodes a cart envelope. A missing, malformed or
// wrong-version blob yields an empty cart, never an error.
func LoadCart(ctx context.Context, s Store, userID int32, key string) domain.Cart {
	blob, err := s.Get(ctx, userID, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Cart blob read failed, falling back to empty cart", "userID", userID, "key", key, "error", err)
		}
		return domain.NewCart()
	}

	var cart domain.Cart
	if err := json.Unmarshal(blob, &cart); err != nil {
		logger.Warn("Cart blob is malformed, resetting to empty cart", "userID", userID, "key", key, "error", err)
		return domain.NewCart()
	}
	if cart.Version != domain.CartSchemaVersion {
		logger.Warn("Cart blob has unknown schema version, resetting to empty cart", "userID", userID, "key", key, "version", cart.Version)
		return domain.NewCart()
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart
}

// SaveCart encodes and writes a cart envelope, stamping the schema version.
func SaveCart(ctx context.Context, s Store, userID int32, key string, cart domain.Cart) error {
	cart.Version = domain.CartSchemaVersion
	blob, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.Set(ctx, userID, key, blob)
}
