package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rentmart-backend/internal/cartstore"
	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	cartStore   cartstore.Store
	pricing     PricingService
	emailSvc    EmailService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	cartStore cartstore.Store,
	pricing PricingService,
	emailSvc EmailService,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		cartStore:   cartStore,
		pricing:     pricing,
		emailSvc:    emailSvc,
	}
}

// SubmitOrder turns the cart into confirmed rental orders, one per line item.
// Payment is simulated: orders are recorded as paid without gateway
// interaction. The cart is cleared only after every order write succeeds.
func (s *orderService) SubmitOrder(ctx context.Context, customerID int32, input SubmitOrderInput) ([]domain.RentalOrder, error) {
	method, ok := domain.ParseDeliveryMethod(strings.TrimSpace(input.DeliveryMethod))
	if !ok {
		return nil, &ValidationError{Field: "delivery_method"}
	}
	if field := input.DeliveryAddress.FirstMissingField(); field != "" {
		return nil, &ValidationError{Field: "delivery_address." + field}
	}
	if field := input.BillingAddress.FirstMissingField(); field != "" {
		return nil, &ValidationError{Field: "billing_address." + field}
	}

	cart := cartstore.LoadCart(ctx, s.cartStore, customerID, domain.CartKeyCart)
	if len(cart.Items) == 0 {
		return nil, &ValidationError{Field: "cart"}
	}

	// Client-supplied totals are never trusted; the quote is recomputed here
	// so every stored order satisfies total = subtotal - discount + delivery + tax.
	quote, err := s.pricing.Quote(ctx, cart.Items, input.CouponCode, method)
	if err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("RM-%s", strings.ToUpper(uuid.New().String()[:8]))

	orders := make([]domain.RentalOrder, 0, len(cart.Items))
	var allocatedTax, allocatedDeposit int64
	for i, item := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, &ValidationError{Field: "cart"}
		}

		lineSubtotal := item.UnitPriceCents * int64(item.Quantity)
		tax := lineSubtotal * quote.TaxCents / max64(quote.SubtotalCents, 1)
		deposit := lineSubtotal * quote.DepositCents / max64(quote.SubtotalCents, 1)
		// Floor division leaves a few cents unassigned when the split is
		// uneven; the last line picks up the remainder so the per-order
		// figures sum exactly to the quote.
		if i == len(cart.Items)-1 {
			tax = quote.TaxCents - allocatedTax
			deposit = quote.DepositCents - allocatedDeposit
		}
		allocatedTax += tax
		allocatedDeposit += deposit

		order := domain.RentalOrder{
			Reference:       fmt.Sprintf("%s-%d", reference, i+1),
			ProductID:       item.ProductID,
			CustomerID:      customerID,
			EndUserID:       product.OwnerID,
			StartDate:       item.StartDate,
			EndDate:         item.EndDate,
			ProductName:     item.Name,
			UnitPriceCents:  item.UnitPriceCents,
			Quantity:        item.Quantity,
			SubtotalCents:   lineSubtotal,
			TaxCents:        tax,
			DepositCents:    deposit,
			CouponCode:      strings.TrimSpace(input.CouponCode),
			DeliveryMethod:  method,
			DeliveryAddress: input.DeliveryAddress,
			BillingAddress:  input.BillingAddress,
			Status:          domain.OrderStatusConfirmed,
			PaymentStatus:   domain.PaymentStatusPaid,
		}
		// The whole-cart discount and the single delivery charge ride on the
		// first line so the per-order totals sum to the quoted cart total.
		if i == 0 {
			order.DiscountCents = quote.DiscountCents
			order.DeliveryChargeCents = quote.DeliveryChargeCents
		}
		order.TotalCents = order.SubtotalCents - order.DiscountCents + order.DeliveryChargeCents + order.TaxCents
		if order.TotalCents < 0 {
			order.TotalCents = 0
		}
		orders = append(orders, order)
	}

	refs := make([]*domain.RentalOrder, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	// One transaction covers every insert and stock decrement, so a failed
	// line leaves no partial orders behind; the cart stays intact for a
	// clean resubmission.
	if err := s.orderRepo.CreateBatch(ctx, refs); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &ValidationError{Field: "cart"}
		}
		return nil, &PersistenceError{Err: err}
	}

	if err := s.cartStore.Clear(ctx, customerID, domain.CartKeyCart); err != nil {
		logger.Warn("Failed to clear cart after checkout", "userID", customerID, "error", err)
	}
	s.cartStore.Clear(ctx, customerID, domain.CartKeyCheckout)

	// Hand the confirmation data to the order screen.
	if blob, err := json.Marshal(orders); err == nil {
		if err := s.cartStore.Set(ctx, customerID, domain.CartKeyOrder, blob); err != nil {
			logger.Warn("Failed to store order hand-off data", "userID", customerID, "error", err)
		}
	}

	s.notifyOrderConfirmed(ctx, customerID, orders)
	return orders, nil
}

func (s *orderService) notifyOrderConfirmed(ctx context.Context, customerID int32, orders []domain.RentalOrder) {
	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.Warn("Failed to load customer for order notifications", "userID", customerID, "error", err)
		return
	}

	for i := range orders {
		order := &orders[i]
		note := &domain.Notification{
			UserID:  customerID,
			Type:    domain.NotificationTypeOrderConfirmed,
			Title:   "Order confirmed",
			Message: fmt.Sprintf("Your rental of %s is confirmed (ref %s).", order.ProductName, order.Reference),
			OrderID: &order.ID,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create order notification", "orderID", order.ID, "error", err)
		}

		ownerNote := &domain.Notification{
			UserID:  order.EndUserID,
			Type:    domain.NotificationTypeOrderConfirmed,
			Title:   "New booking",
			Message: fmt.Sprintf("%s booked %s (ref %s).", customer.Name, order.ProductName, order.Reference),
			OrderID: &order.ID,
		}
		if err := s.noteRepo.Create(ctx, ownerNote); err != nil {
			logger.Warn("Failed to create owner notification", "orderID", order.ID, "error", err)
		}

		if err := s.emailSvc.SendOrderConfirmation(ctx, customer.Email, customer.Name, order.Reference, order.ProductName, order.TotalCents); err != nil {
			logger.Warn("Failed to send order confirmation email", "orderID", order.ID, "error", err)
		}
	}
}

func (s *orderService) GetOrder(ctx context.Context, userID int32, orderID int32) (*domain.RentalOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.CustomerID != userID && order.EndUserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.orderRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *orderService) ListBookings(ctx context.Context, endUserID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.orderRepo.ListByOwner(ctx, endUserID, status, page, pageSize)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, endUserID, orderID int32, next domain.OrderStatus) (*domain.RentalOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.EndUserID != endUserID {
		return nil, ErrForbidden
	}
	if !order.Status.CanTransition(next) {
		return nil, &ValidationError{Field: "status"}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	order.Status = next

	// Returned items go back on the shelf.
	if next == domain.OrderStatusReturned {
		if err := s.productRepo.AdjustQuantity(ctx, order.ProductID, order.Quantity); err != nil {
			logger.Warn("Failed to restore product quantity after return", "productID", order.ProductID, "error", err)
		}
	}

	note := &domain.Notification{
		UserID:  order.CustomerID,
		Type:    domain.NotificationTypeOrderStatus,
		Title:   "Order update",
		Message: fmt.Sprintf("Your rental %s is now %s.", order.Reference, strings.ToLower(string(next))),
		OrderID: &order.ID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create status notification", "orderID", order.ID, "error", err)
	}

	return order, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
