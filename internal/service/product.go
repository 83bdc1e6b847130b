package service

import (
	"context"
	"database/sql"
	"errors"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) ProductService {
	return &productService{productRepo: productRepo, userRepo: userRepo}
}

func (s *productService) AddProduct(ctx context.Context, ownerID int32, p *domain.Product) error {
	if p.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if p.Category == "" {
		return &ValidationError{Field: "category"}
	}
	if p.Quantity < 0 {
		return &ValidationError{Field: "quantity"}
	}
	if p.RateUnit == "" {
		p.RateUnit = domain.RateUnitDay
	}
	if p.UnitPriceCents() <= 0 {
		return &ValidationError{Field: "price"}
	}

	p.OwnerID = ownerID
	if err := s.productRepo.Create(ctx, p); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner, err := s.userRepo.GetByID(ctx, p.OwnerID); err == nil {
		p.Owner = owner
	}
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, ownerID int32, p *domain.Product) error {
	existing, err := s.productRepo.GetByID(ctx, p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}

	p.OwnerID = existing.OwnerID
	if err := s.productRepo.Update(ctx, p); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, ownerID, productID int32) error {
	existing, err := s.productRepo.GetByID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.List(ctx, filter, page, pageSize)
}

func (s *productService) ListMyProducts(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *productService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}
