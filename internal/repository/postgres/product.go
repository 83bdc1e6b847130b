package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, owner_id, name, COALESCE(image_key, ''), COALESCE(description, ''), category,
	price_per_hour_cents, price_per_day_cents, price_per_week_cents, price_per_month_cents, price_per_year_cents,
	rate_unit, available, quantity, created_on, updated_on`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.ImageKey, &p.Description, &p.Category,
		&p.PricePerHourCents, &p.PricePerDayCents, &p.PricePerWeekCents, &p.PricePerMonthCents, &p.PricePerYearCents,
		&p.RateUnit, &p.Available, &p.Quantity, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	p.UpdatedOn = updatedOn.Format("2006-01-02")
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (owner_id, name, image_key, description, category,
	          price_per_hour_cents, price_per_day_cents, price_per_week_cents, price_per_month_cents, price_per_year_cents,
	          rate_unit, available, quantity, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	logger.DatabaseCall("INSERT", "products", "ownerID", p.OwnerID, "name", p.Name)
	now := time.Now().Format("2006-01-02")
	p.CreatedOn = now
	p.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, p.OwnerID, p.Name, p.ImageKey, p.Description, p.Category,
		p.PricePerHourCents, p.PricePerDayCents, p.PricePerWeekCents, p.PricePerMonthCents, p.PricePerYearCents,
		p.RateUnit, p.Available, p.Quantity, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
	logger.DatabaseResult("INSERT", 1, err, "productID", p.ID)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, image_key=$2, description=$3, category=$4,
	          price_per_hour_cents=$5, price_per_day_cents=$6, price_per_week_cents=$7, price_per_month_cents=$8, price_per_year_cents=$9,
	          rate_unit=$10, available=$11, quantity=$12, updated_on=$13 WHERE id=$14`
	p.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, p.Name, p.ImageKey, p.Description, p.Category,
		p.PricePerHourCents, p.PricePerDayCents, p.PricePerWeekCents, p.PricePerMonthCents, p.PricePerYearCents,
		p.RateUnit, p.Available, p.Quantity, p.UpdatedOn, p.ID)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error) {
	where := `WHERE 1=1`
	args := []any{}
	idx := 1
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, filter.Category)
		idx++
	}
	if filter.Query != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", idx, idx)
		args = append(args, "%"+filter.Query+"%")
		idx++
	}
	if filter.MaxPriceCents > 0 {
		where += fmt.Sprintf(" AND price_per_day_cents <= $%d", idx)
		args = append(args, filter.MaxPriceCents)
		idx++
	}
	if filter.OnlyAvailable {
		where += " AND available AND quantity > 0"
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where +
		fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

func (r *productRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

func (r *productRepository) AdjustQuantity(ctx context.Context, id int32, delta int32) error {
	// Guard against driving quantity negative under concurrent checkouts.
	query := `UPDATE products SET quantity = quantity + $1, updated_on = $2 WHERE id = $3 AND quantity + $1 >= 0`
	result, err := r.db.ExecContext(ctx, query, delta, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("product %d: insufficient quantity", id)
	}
	return nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
