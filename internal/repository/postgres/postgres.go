package postgres

import (
	"database/sql"

	"rentmart-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.OrderRepository
	repository.CouponRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProductRepository:      NewProductRepository(db),
		OrderRepository:        NewOrderRepository(db),
		CouponRepository:       NewCouponRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
