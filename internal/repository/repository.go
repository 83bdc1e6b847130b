package repository

import (
	"context"
	"errors"
	"time"

	"rentmart-backend/internal/domain"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already registered (unique index on lower(email)).
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInsufficientStock is returned by OrderRepository.CreateBatch when a
// product's remaining quantity cannot cover an order line.
var ErrInsufficientStock = errors.New("insufficient product quantity")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category      string
	Query         string
	MaxPriceCents int64
	OnlyAvailable bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter ProductFilter, page, pageSize int32) ([]domain.Product, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error)
	AdjustQuantity(ctx context.Context, id int32, delta int32) error
	ListCategories(ctx context.Context) ([]string, error)
}

type OrderRepository interface {
	// CreateBatch persists the orders and decrements product stock in a
	// single transaction; either every order lands or none do.
	CreateBatch(ctx context.Context, orders []*domain.RentalOrder) error
	GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error)
	UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error
	AccrueLateFee(ctx context.Context, id int32, feeCents int64) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListByOwner(ctx context.Context, endUserID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalOrder, error)
	ListDueSoon(ctx context.Context, asOf time.Time, within time.Duration) ([]domain.RentalOrder, error)
}

type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllRead(ctx context.Context, userID int32) error
}
