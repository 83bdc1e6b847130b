package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"rentmart-backend/internal/config"
	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"
)

type pricingService struct {
	couponRepo repository.CouponRepository
	cfg        config.PricingConfig
}

func NewPricingService(couponRepo repository.CouponRepository, cfg config.PricingConfig) PricingService {
	return &pricingService{couponRepo: couponRepo, cfg: cfg}
}

// Quote computes subtotal - discount + delivery charge + tax. The result is
// a pure function of its inputs and the pricing config; repeated calls with
// the same inputs produce identical totals.
func (s *pricingService) Quote(ctx context.Context, items []domain.CartItem, couponCode string, method domain.DeliveryMethod) (Quote, error) {
	var subtotal int64
	for _, it := range items {
		if it.Quantity < 1 || it.UnitPriceCents < 0 {
			return Quote{}, &ValidationError{Field: "line_items"}
		}
		subtotal += it.UnitPriceCents * int64(it.Quantity)
	}

	discount := s.discountFor(ctx, couponCode, subtotal)
	delivery := s.deliveryChargeFor(method)
	tax := subtotal * s.cfg.TaxRateBasisPoints / 10000

	total := subtotal - discount + delivery + tax
	if total < 0 {
		total = 0
	}

	return Quote{
		SubtotalCents:       subtotal,
		DiscountCents:       discount,
		DeliveryChargeCents: delivery,
		TaxCents:            tax,
		TotalCents:          total,
		DepositCents:        subtotal * s.cfg.DepositPercent / 100,
	}, nil
}

// discountFor resolves a coupon code to a discount amount. Unknown, inactive
// or absent codes yield zero rather than an error.
func (s *pricingService) discountFor(ctx context.Context, code string, subtotalCents int64) int64 {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Coupon lookup failed, treating as no discount", "code", code, "error", err)
		}
		return 0
	}
	return coupon.DiscountCents(subtotalCents)
}

func (s *pricingService) deliveryChargeFor(method domain.DeliveryMethod) int64 {
	switch method {
	case domain.DeliveryMethodExpress:
		return s.cfg.ExpressDeliveryCents
	case domain.DeliveryMethodScheduled:
		return s.cfg.ScheduledDeliveryCents
	default: // standard delivery is free
		return 0
	}
}
