package service

import (
	"context"
	"encoding/json"
	"errors"

	"rentmart-backend/internal/cartstore"
	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
	"rentmart-backend/internal/utils"
)

type cartService struct {
	store       cartstore.Store
	productRepo repository.ProductRepository
}

func NewCartService(store cartstore.Store, productRepo repository.ProductRepository) CartService {
	return &cartService{store: store, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID int32) (domain.Cart, error) {
	return cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyCart), nil
}

func (s *cartService) AddItem(ctx context.Context, userID, productID int32, quantity int32, startDate, endDate string) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, &ValidationError{Field: "quantity"}
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, ErrNotFound
	}
	if !product.Rentable() {
		return domain.Cart{}, &ValidationError{Field: "product"}
	}

	// Snapshot the line price now; later product price changes do not
	// retroactively reprice the cart.
	unitPrice, err := utils.RentalCostCents(product, startDate, endDate)
	if err != nil {
		return domain.Cart{}, &ValidationError{Field: "rental_dates"}
	}

	cart := cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyCart)
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].UnitPriceCents = unitPrice
			cart.Items[i].StartDate = startDate
			cart.Items[i].EndDate = endDate
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:      productID,
			Name:           product.Name,
			UnitPriceCents: unitPrice,
			Quantity:       quantity,
			StartDate:      startDate,
			EndDate:        endDate,
		})
	}

	if err := cartstore.SaveCart(ctx, s.store, userID, domain.CartKeyCart, cart); err != nil {
		return domain.Cart{}, &PersistenceError{Err: err}
	}
	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID int32, quantity int32) (domain.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart := cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyCart)
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return domain.Cart{}, ErrNotFound
	}

	if err := cartstore.SaveCart(ctx, s.store, userID, domain.CartKeyCart, cart); err != nil {
		return domain.Cart{}, &PersistenceError{Err: err}
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID int32) (domain.Cart, error) {
	cart := cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyCart)
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept

	if err := cartstore.SaveCart(ctx, s.store, userID, domain.CartKeyCart, cart); err != nil {
		return domain.Cart{}, &PersistenceError{Err: err}
	}
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID int32) error {
	return s.store.Clear(ctx, userID, domain.CartKeyCart)
}

func (s *cartService) GetWishlist(ctx context.Context, userID int32) (domain.Cart, error) {
	return cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyWishlist), nil
}

func (s *cartService) AddToWishlist(ctx context.Context, userID, productID int32) (domain.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, ErrNotFound
	}

	list := cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyWishlist)
	for _, it := range list.Items {
		if it.ProductID == productID {
			return list, nil
		}
	}
	list.Items = append(list.Items, domain.CartItem{
		ProductID:      productID,
		Name:           product.Name,
		UnitPriceCents: product.UnitPriceCents(),
		Quantity:       1,
	})

	if err := cartstore.SaveCart(ctx, s.store, userID, domain.CartKeyWishlist, list); err != nil {
		return domain.Cart{}, &PersistenceError{Err: err}
	}
	return list, nil
}

func (s *cartService) MoveToCart(ctx context.Context, userID, productID int32, quantity int32, startDate, endDate string) (domain.Cart, error) {
	list := cartstore.LoadCart(ctx, s.store, userID, domain.CartKeyWishlist)
	kept := list.Items[:0]
	present := false
	for _, it := range list.Items {
		if it.ProductID == productID {
			present = true
			continue
		}
		kept = append(kept, it)
	}
	if !present {
		return domain.Cart{}, ErrNotFound
	}
	list.Items = kept

	cart, err := s.AddItem(ctx, userID, productID, quantity, startDate, endDate)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := cartstore.SaveCart(ctx, s.store, userID, domain.CartKeyWishlist, list); err != nil {
		return domain.Cart{}, &PersistenceError{Err: err}
	}
	return cart, nil
}

// SaveCheckoutData stashes in-progress checkout form state between pages.
// The blob is opaque to the server beyond being valid JSON.
func (s *cartService) SaveCheckoutData(ctx context.Context, userID int32, blob json.RawMessage) error {
	if !json.Valid(blob) {
		return &ValidationError{Field: "checkout_data"}
	}
	if err := s.store.Set(ctx, userID, domain.CartKeyCheckout, blob); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (s *cartService) GetCheckoutData(ctx context.Context, userID int32) (json.RawMessage, error) {
	return s.loadBlob(ctx, userID, domain.CartKeyCheckout)
}

// GetOrderData returns the order summary written by the last successful
// checkout submission, for the confirmation page.
func (s *cartService) GetOrderData(ctx context.Context, userID int32) (json.RawMessage, error) {
	return s.loadBlob(ctx, userID, domain.CartKeyOrder)
}

func (s *cartService) loadBlob(ctx context.Context, userID int32, key string) (json.RawMessage, error) {
	blob, err := s.store.Get(ctx, userID, key)
	if errors.Is(err, cartstore.ErrNotFound) {
		return json.RawMessage("null"), nil
	}
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return blob, nil
}
