package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, reference, product_id, customer_id, end_user_id, start_date, end_date,
	product_name, unit_price_cents, quantity,
	subtotal_cents, discount_cents, delivery_charge_cents, tax_cents, total_cents, deposit_cents, late_fee_cents,
	COALESCE(coupon_code, ''), delivery_method, delivery_address, billing_address, status, payment_status, created_on, updated_on`

func scanOrder(row interface{ Scan(...any) error }) (*domain.RentalOrder, error) {
	o := &domain.RentalOrder{}
	var deliveryAddr, billingAddr []byte
	var createdOn, updatedOn time.Time
	err := row.Scan(&o.ID, &o.Reference, &o.ProductID, &o.CustomerID, &o.EndUserID, &o.StartDate, &o.EndDate,
		&o.ProductName, &o.UnitPriceCents, &o.Quantity,
		&o.SubtotalCents, &o.DiscountCents, &o.DeliveryChargeCents, &o.TaxCents, &o.TotalCents, &o.DepositCents, &o.LateFeeCents,
		&o.CouponCode, &o.DeliveryMethod, &deliveryAddr, &billingAddr, &o.Status, &o.PaymentStatus, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(deliveryAddr, &o.DeliveryAddress); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(billingAddr, &o.BillingAddress); err != nil {
		return nil, err
	}
	o.CreatedOn = createdOn.Format("2006-01-02")
	o.UpdatedOn = updatedOn.Format("2006-01-02")
	return o, nil
}

// CreateBatch inserts every order and decrements the matching product stock
// inside one transaction, so a failed line leaves nothing behind.
func (r *orderRepository) CreateBatch(ctx context.Context, orders []*domain.RentalOrder) error {
	logger.DatabaseCall("INSERT", "rental_orders", "orders", len(orders))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Format("2006-01-02")
	for _, o := range orders {
		if err := insertOrder(ctx, tx, o, now); err != nil {
			logger.DatabaseResult("INSERT", 0, err)
			return err
		}
		if err := decrementStock(ctx, tx, o.ProductID, o.Quantity, now); err != nil {
			logger.DatabaseResult("INSERT", 0, err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.DatabaseResult("INSERT", int64(len(orders)), nil)
	return nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, o *domain.RentalOrder, now string) error {
	deliveryAddr, err := json.Marshal(o.DeliveryAddress)
	if err != nil {
		return err
	}
	billingAddr, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return err
	}

	query := `INSERT INTO rental_orders (reference, product_id, customer_id, end_user_id, start_date, end_date,
	          product_name, unit_price_cents, quantity,
	          subtotal_cents, discount_cents, delivery_charge_cents, tax_cents, total_cents, deposit_cents, late_fee_cents,
	          coupon_code, delivery_method, delivery_address, billing_address, status, payment_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	          RETURNING id`
	o.CreatedOn = now
	o.UpdatedOn = now
	return tx.QueryRowContext(ctx, query, o.Reference, o.ProductID, o.CustomerID, o.EndUserID, o.StartDate, o.EndDate,
		o.ProductName, o.UnitPriceCents, o.Quantity,
		o.SubtotalCents, o.DiscountCents, o.DeliveryChargeCents, o.TaxCents, o.TotalCents, o.DepositCents, o.LateFeeCents,
		o.CouponCode, o.DeliveryMethod, deliveryAddr, billingAddr, o.Status, o.PaymentStatus, o.CreatedOn, o.UpdatedOn).Scan(&o.ID)
}

func decrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int32, now string) error {
	query := `UPDATE products SET quantity = quantity - $1, updated_on = $2 WHERE id = $3 AND quantity >= $1`
	result, err := tx.ExecContext(ctx, query, quantity, now, productID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("product %d: %w", productID, repository.ErrInsufficientStock)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM rental_orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error {
	query := `UPDATE rental_orders SET status = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *orderRepository) AccrueLateFee(ctx context.Context, id int32, feeCents int64) error {
	query := `UPDATE rental_orders SET late_fee_cents = late_fee_cents + $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, feeCents, time.Now().Format("2006-01-02"), id)
	return err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *orderRepository) ListByOwner(ctx context.Context, endUserID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return r.list(ctx, "end_user_id", endUserID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, column string, id int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	where := fmt.Sprintf(`WHERE %s = $1`, column)
	args := []any{id}
	if status != "" {
		where += " AND status = $2"
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rental_orders `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM rental_orders ` + where +
		fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM rental_orders WHERE status IN ('DELIVERED', 'LATE') AND end_date < $1`
	return r.queryOrders(ctx, query, asOf.Format("2006-01-02"))
}

func (r *orderRepository) ListDueSoon(ctx context.Context, asOf time.Time, within time.Duration) ([]domain.RentalOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM rental_orders WHERE status = 'DELIVERED' AND end_date >= $1 AND end_date <= $2`
	return r.queryOrders(ctx, query, asOf.Format("2006-01-02"), asOf.Add(within).Format("2006-01-02"))
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.RentalOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
