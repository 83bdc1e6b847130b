package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	query := `SELECT id, code, kind, value, active, created_on FROM coupons WHERE UPPER(code) = UPPER($1)`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, code).Scan(&c.ID, &c.Code, &c.Kind, &c.Value, &c.Active, &createdOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	return c, nil
}
