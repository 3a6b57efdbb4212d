package services

import (
	"context"
	"errors"

	"marketplace/internal/apperror"
	"marketplace/internal/authz"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// List returns a page of the catalogue matching filter, newest first.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, apperror.NewInternal("failed to list products", err)
	}
	return products, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	return product, nil
}

// GetBySlug retrieves a single product by its slug.
func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, productLookupError(err)
	}
	return product, nil
}

// ListBySeller returns every product of a seller, newest first.
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list seller products", err)
	}
	return products, nil
}

// Create lists a new product owned by seller.
func (s *ProductService) Create(ctx context.Context, seller *models.User, req *validation.CreateProductRequest) (*models.Product, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	product := &models.Product{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Category:    req.Category,
		Tags:        tags,
		Image:       req.Image,
		SellerID:    seller.ID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperror.NewInternal("failed to create product", err)
	}
	return product, nil
}

// Update overwrites the fields present in req. Only the owning seller may
// update a product.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, caller *models.User, req *validation.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	if err := authz.RequireOwnership(caller, product.SellerID, "update", "product"); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
		if product.Tags == nil {
			product.Tags = []string{}
		}
	}
	if req.Image != nil {
		product.Image = *req.Image
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, productLookupError(err)
	}
	return product, nil
}

// Delete removes a product. Only the owning seller may delete it.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID, caller *models.User) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return productLookupError(err)
	}
	if err := authz.RequireOwnership(caller, product.SellerID, "delete", "product"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return productLookupError(err)
	}
	return nil
}

func productLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NewNotFound("Product not found", err)
	}
	return apperror.NewInternal("failed to access product", err)
}
