package service

import (
	"context"
	"encoding/json"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

// RegisterInput is the registration payload. Company fields apply only to
// end-user accounts.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	CompanyName  string `json:"company_name"`
	BusinessType string `json:"business_type"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*domain.Identity, string, error) // identity, session token
}

type ProductService interface {
	AddProduct(ctx context.Context, ownerID int32, product *domain.Product) error
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	UpdateProduct(ctx context.Context, ownerID int32, product *domain.Product) error
	DeleteProduct(ctx context.Context, ownerID, productID int32) error
	ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error)
	ListMyProducts(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type CartService interface {
	GetCart(ctx context.Context, userID int32) (domain.Cart, error)
	AddItem(ctx context.Context, userID, productID int32, quantity int32, startDate, endDate string) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID int32, quantity int32) (domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID int32) (domain.Cart, error)
	ClearCart(ctx context.Context, userID int32) error
	GetWishlist(ctx context.Context, userID int32) (domain.Cart, error)
	AddToWishlist(ctx context.Context, userID, productID int32) (domain.Cart, error)
	MoveToCart(ctx context.Context, userID, productID int32, quantity int32, startDate, endDate string) (domain.Cart, error)
	SaveCheckoutData(ctx context.Context, userID int32, blob json.RawMessage) error
	GetCheckoutData(ctx context.Context, userID int32) (json.RawMessage, error)
	GetOrderData(ctx context.Context, userID int32) (json.RawMessage, error)
}

// Quote is a computed checkout pricing breakdown. All values are cents and
// total is clamped at zero.
type Quote struct {
	SubtotalCents       int64 `json:"subtotal_cents"`
	DiscountCents       int64 `json:"discount_cents"`
	DeliveryChargeCents int64 `json:"delivery_charge_cents"`
	TaxCents            int64 `json:"tax_cents"`
	TotalCents          int64 `json:"total_cents"`
	DepositCents        int64 `json:"deposit_cents"`
}

type PricingService interface {
	Quote(ctx context.Context, items []domain.CartItem, couponCode string, method domain.DeliveryMethod) (Quote, error)
}

// SubmitOrderInput carries the checkout form. Pricing fields are not
// accepted from the client; the quote is recomputed server-side.
type SubmitOrderInput struct {
	DeliveryMethod  string         `json:"delivery_method"`
	CouponCode      string         `json:"coupon_code"`
	DeliveryAddress domain.Address `json:"delivery_address"`
	BillingAddress  domain.Address `json:"billing_address"`
}

type OrderService interface {
	SubmitOrder(ctx context.Context, customerID int32, input SubmitOrderInput) ([]domain.RentalOrder, error)
	GetOrder(ctx context.Context, userID int32, orderID int32) (*domain.RentalOrder, error)
	ListMyOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListBookings(ctx context.Context, endUserID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	UpdateOrderStatus(ctx context.Context, endUserID, orderID int32, next domain.OrderStatus) (*domain.RentalOrder, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	MarkAllRead(ctx context.Context, userID int32) error
}

type EmailService interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendOrderConfirmation(ctx context.Context, email, name, reference, productName string, totalCents int64) error
	SendReturnReminder(ctx context.Context, email, name, productName, endDate string) error
	SendLateNotice(ctx context.Context, email, name, productName string, lateFeeCents int64) error
}
