package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"rentmart-backend/internal/cartstore"
	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderFixture struct {
	orderRepo   *MockOrderRepo
	productRepo *MockProductRepo
	userRepo    *MockUserRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
	cartStore   *cartstore.MemoryStore
	svc         OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo:   new(MockOrderRepo),
		productRepo: new(MockProductRepo),
		userRepo:    new(MockUserRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
		cartStore:   cartstore.NewMemoryStore(),
	}
	couponRepo := new(MockCouponRepo)
	couponRepo.On("GetByCode", mock.Anything, "SAVE100").Return(&domain.Coupon{
		Code: "SAVE100", Kind: domain.DiscountKindFlat, Value: 10000, Active: true,
	}, nil)
	pricing := NewPricingService(couponRepo, testPricingConfig())
	f.svc = NewOrderService(f.orderRepo, f.productRepo, f.userRepo, f.noteRepo, f.cartStore, pricing, f.emailSvc)
	return f
}

func testAddress() domain.Address {
	return domain.Address{
		FullName:   "Alice Smith",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
		Phone:      "555-0100",
	}
}

func seedCart(t *testing.T, store *cartstore.MemoryStore, userID int32, items ...domain.CartItem) {
	t.Helper()
	cart := domain.NewCart()
	cart.Items = items
	if err := cartstore.SaveCart(context.Background(), store, userID, domain.CartKeyCart, cart); err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}
}

func TestOrderService_SubmitOrder(t *testing.T) {
	ctx := context.Background()
	const customerID = int32(7)

	validInput := SubmitOrderInput{
		DeliveryMethod:  "express",
		CouponCode:      "SAVE100",
		DeliveryAddress: testAddress(),
		BillingAddress:  testAddress(),
	}

	t.Run("Unknown delivery method", func(t *testing.T) {
		f := newOrderFixture()
		input := validInput
		input.DeliveryMethod = "teleport"
		_, err := f.svc.SubmitOrder(ctx, customerID, input)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "delivery_method", vErr.Field)
	})

	t.Run("First missing address field reported", func(t *testing.T) {
		f := newOrderFixture()
		input := validInput
		addr := testAddress()
		addr.City = ""
		addr.Phone = ""
		input.DeliveryAddress = addr
		_, err := f.svc.SubmitOrder(ctx, customerID, input)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "delivery_address.city", vErr.Field)
	})

	t.Run("Empty cart rejected", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.SubmitOrder(ctx, customerID, validInput)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "cart", vErr.Field)
	})

	t.Run("One order per cart line with apportioned totals", func(t *testing.T) {
		f := newOrderFixture()
		seedCart(t, f.cartStore, customerID,
			domain.CartItem{ProductID: 1, Name: "Excavator", UnitPriceCents: 50000, Quantity: 2, StartDate: "2026-09-01", EndDate: "2026-09-07"},
			domain.CartItem{ProductID: 2, Name: "Generator", UnitPriceCents: 20000, Quantity: 1, StartDate: "2026-09-01", EndDate: "2026-09-07"},
		)

		f.productRepo.On("GetByID", ctx, int32(1)).Return(&domain.Product{ID: 1, OwnerID: 55, Name: "Excavator"}, nil)
		f.productRepo.On("GetByID", ctx, int32(2)).Return(&domain.Product{ID: 2, OwnerID: 66, Name: "Generator"}, nil)

		f.orderRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*domain.RentalOrder")).Run(func(args mock.Arguments) {
			nextID := int32(100)
			for _, order := range args.Get(1).([]*domain.RentalOrder) {
				nextID++
				order.ID = nextID
			}
		}).Return(nil)

		f.userRepo.On("GetByID", ctx, customerID).Return(&domain.User{ID: customerID, Name: "Alice", Email: "alice@example.com"}, nil)
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.emailSvc.On("SendOrderConfirmation", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		orders, err := f.svc.SubmitOrder(ctx, customerID, validInput)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)

		first, second := orders[0], orders[1]

		// Whole-cart discount and the delivery charge ride on the first line.
		assert.Equal(t, int64(100000), first.SubtotalCents)
		assert.Equal(t, int64(10000), first.DiscountCents)
		assert.Equal(t, int64(9900), first.DeliveryChargeCents)
		assert.Equal(t, int64(5000), first.TaxCents)
		assert.Equal(t, int64(104900), first.TotalCents)

		assert.Equal(t, int64(20000), second.SubtotalCents)
		assert.Equal(t, int64(0), second.DiscountCents)
		assert.Equal(t, int64(0), second.DeliveryChargeCents)
		assert.Equal(t, int64(1000), second.TaxCents)
		assert.Equal(t, int64(21000), second.TotalCents)

		// Per-order totals sum to the quoted cart total.
		assert.Equal(t, int64(125900), first.TotalCents+second.TotalCents)

		for _, o := range orders {
			assert.Equal(t, domain.OrderStatusConfirmed, o.Status)
			assert.Equal(t, domain.PaymentStatusPaid, o.PaymentStatus)
			assert.Equal(t, o.SubtotalCents-o.DiscountCents+o.DeliveryChargeCents+o.TaxCents, o.TotalCents)
			assert.NotEmpty(t, o.Reference)
		}
		assert.Equal(t, int32(55), first.EndUserID)
		assert.Equal(t, int32(66), second.EndUserID)

		// Cart cleared after success.
		cart := cartstore.LoadCart(ctx, f.cartStore, customerID, domain.CartKeyCart)
		assert.Empty(t, cart.Items)

		// Order hand-off blob written.
		blob, err := f.cartStore.Get(ctx, customerID, domain.CartKeyOrder)
		assert.NoError(t, err)
		assert.NotEmpty(t, blob)
	})

	t.Run("Uneven tax split lands the remainder on the last line", func(t *testing.T) {
		f := newOrderFixture()
		input := validInput
		input.DeliveryMethod = "standard"
		input.CouponCode = ""
		seedCart(t, f.cartStore, customerID,
			domain.CartItem{ProductID: 1, Name: "Excavator", UnitPriceCents: 9999, Quantity: 1, StartDate: "2026-09-01", EndDate: "2026-09-07"},
			domain.CartItem{ProductID: 2, Name: "Generator", UnitPriceCents: 20001, Quantity: 1, StartDate: "2026-09-01", EndDate: "2026-09-07"},
		)

		f.productRepo.On("GetByID", ctx, int32(1)).Return(&domain.Product{ID: 1, OwnerID: 55, Name: "Excavator"}, nil)
		f.productRepo.On("GetByID", ctx, int32(2)).Return(&domain.Product{ID: 2, OwnerID: 66, Name: "Generator"}, nil)
		f.orderRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)
		f.userRepo.On("GetByID", ctx, customerID).Return(&domain.User{ID: customerID, Name: "Alice", Email: "alice@example.com"}, nil)
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.emailSvc.On("SendOrderConfirmation", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		orders, err := f.svc.SubmitOrder(ctx, customerID, input)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)

		// 5% of 30000 is 1500; the first line floors to 499 and the second
		// collects the remaining 1001.
		assert.Equal(t, int64(499), orders[0].TaxCents)
		assert.Equal(t, int64(1001), orders[1].TaxCents)
		assert.Equal(t, int64(1500), orders[0].TaxCents+orders[1].TaxCents)

		// 10% deposit of 30000 is 3000, split the same way.
		assert.Equal(t, int64(999), orders[0].DepositCents)
		assert.Equal(t, int64(2001), orders[1].DepositCents)

		// Per-order totals still sum to the quoted cart total.
		assert.Equal(t, int64(31500), orders[0].TotalCents+orders[1].TotalCents)
	})

	t.Run("Persistence failure keeps cart intact", func(t *testing.T) {
		f := newOrderFixture()
		seedCart(t, f.cartStore, customerID,
			domain.CartItem{ProductID: 1, Name: "Excavator", UnitPriceCents: 50000, Quantity: 2},
			domain.CartItem{ProductID: 2, Name: "Generator", UnitPriceCents: 20000, Quantity: 1},
		)
		f.productRepo.On("GetByID", ctx, int32(1)).Return(&domain.Product{ID: 1, OwnerID: 55}, nil)
		f.productRepo.On("GetByID", ctx, int32(2)).Return(&domain.Product{ID: 2, OwnerID: 66}, nil)
		f.orderRepo.On("CreateBatch", ctx, mock.Anything).Return(assert.AnError)

		_, err := f.svc.SubmitOrder(ctx, customerID, validInput)
		var pErr *PersistenceError
		assert.ErrorAs(t, err, &pErr)

		// The whole submission is one atomic write; nothing is decremented
		// and both lines survive for a resubmission.
		f.productRepo.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything)
		cart := cartstore.LoadCart(ctx, f.cartStore, customerID, domain.CartKeyCart)
		assert.Len(t, cart.Items, 2)
	})

	t.Run("Insufficient stock rejects the whole cart", func(t *testing.T) {
		f := newOrderFixture()
		seedCart(t, f.cartStore, customerID,
			domain.CartItem{ProductID: 1, Name: "Excavator", UnitPriceCents: 50000, Quantity: 2},
		)
		f.productRepo.On("GetByID", ctx, int32(1)).Return(&domain.Product{ID: 1, OwnerID: 55}, nil)
		f.orderRepo.On("CreateBatch", ctx, mock.Anything).Return(fmt.Errorf("product 1: %w", repository.ErrInsufficientStock))

		_, err := f.svc.SubmitOrder(ctx, customerID, validInput)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "cart", vErr.Field)

		cart := cartstore.LoadCart(ctx, f.cartStore, customerID, domain.CartKeyCart)
		assert.Len(t, cart.Items, 1)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	order := &domain.RentalOrder{ID: 9, CustomerID: 7, EndUserID: 55}

	t.Run("Customer can read own order", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(order, nil)
		got, err := f.svc.GetOrder(ctx, 7, 9)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), got.ID)
	})

	t.Run("Owner can read booking", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(order, nil)
		_, err := f.svc.GetOrder(ctx, 55, 9)
		assert.NoError(t, err)
	})

	t.Run("Stranger is forbidden", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(order, nil)
		_, err := f.svc.GetOrder(ctx, 99, 9)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Missing order", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(404)).Return(nil, sql.ErrNoRows)
		_, err := f.svc.GetOrder(ctx, 7, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner advances status", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(&domain.RentalOrder{
			ID: 9, CustomerID: 7, EndUserID: 55, Status: domain.OrderStatusConfirmed,
		}, nil)
		f.orderRepo.On("UpdateStatus", ctx, int32(9), domain.OrderStatusReserved).Return(nil)
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		updated, err := f.svc.UpdateOrderStatus(ctx, 55, 9, domain.OrderStatusReserved)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusReserved, updated.Status)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(&domain.RentalOrder{
			ID: 9, CustomerID: 7, EndUserID: 55, Status: domain.OrderStatusConfirmed,
		}, nil)

		_, err := f.svc.UpdateOrderStatus(ctx, 7, 9, domain.OrderStatusReserved)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Illegal transition rejected", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(&domain.RentalOrder{
			ID: 9, EndUserID: 55, Status: domain.OrderStatusReturned,
		}, nil)

		_, err := f.svc.UpdateOrderStatus(ctx, 55, 9, domain.OrderStatusDelivered)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "status", vErr.Field)
	})

	t.Run("Return restores stock", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.On("GetByID", ctx, int32(9)).Return(&domain.RentalOrder{
			ID: 9, EndUserID: 55, ProductID: 1, Quantity: 2, Status: domain.OrderStatusDelivered,
		}, nil)
		f.orderRepo.On("UpdateStatus", ctx, int32(9), domain.OrderStatusReturned).Return(nil)
		f.productRepo.On("AdjustQuantity", ctx, int32(1), int32(2)).Return(nil)
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.svc.UpdateOrderStatus(ctx, 55, 9, domain.OrderStatusReturned)
		assert.NoError(t, err)
		f.productRepo.AssertExpectations(t)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, domain.OrderStatusQuotation.CanTransition(domain.OrderStatusConfirmed))
	assert.True(t, domain.OrderStatusConfirmed.CanTransition(domain.OrderStatusReserved))
	assert.True(t, domain.OrderStatusReserved.CanTransition(domain.OrderStatusDelivered))
	assert.True(t, domain.OrderStatusDelivered.CanTransition(domain.OrderStatusReturned))
	assert.True(t, domain.OrderStatusLate.CanTransition(domain.OrderStatusReturned))

	// Terminal states go nowhere.
	assert.False(t, domain.OrderStatusReturned.CanTransition(domain.OrderStatusDelivered))
	assert.False(t, domain.OrderStatusCancelled.CanTransition(domain.OrderStatusConfirmed))
	// No skipping ahead.
	assert.False(t, domain.OrderStatusConfirmed.CanTransition(domain.OrderStatusDelivered))
}
