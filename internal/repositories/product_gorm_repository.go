package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst is the ordering of every product listing.
const newestFirst = "created_at DESC, id DESC"

var productColumns = []string{"name", "slug", "description", "price", "stock", "category", "tags", "image", "search_text", "updated_at"}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List returns one page of the products matching filter and the total match count.
func (r *GORMProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := make([]models.Product, 0, filter.Limit)
	err := r.filtered(ctx, filter).
		Preload("Seller", selectSellerSummary).
		Order(newestFirst).
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// ListBySeller returns every product of a seller, newest first.
func (r *GORMProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Order(newestFirst).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products of seller %s: %w", sellerID, err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Seller", selectSellerSummary).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetBySlug retrieves the newest product carrying slug.
func (r *GORMProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Seller", selectSellerSummary).
		Where("slug = ?", slug).Order(newestFirst).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	product.RefreshSearchText()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every mutable column of product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	product.RefreshSearchText()
	res := r.db.WithContext(ctx).Model(product).Select(productColumns).Omit(clause.Associations).Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMProductRepository) filtered(ctx context.Context, filter models.ProductFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.Query != "" {
		// Folded in Go: SQLite LOWER() only knows ASCII.
		q = q.Where(`search_text LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Query))+"%")
	}
	if filter.Tag != "" {
		q = q.Where(r.tagClause(), filter.Tag)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	return q
}

// tagClause matches one whole element of the JSON tags array, case-sensitively.
func (r *GORMProductRepository) tagClause() string {
	if r.db.Dialector.Name() == "postgres" {
		return "jsonb_exists(products.tags::jsonb, ?)"
	}
	return "EXISTS (SELECT 1 FROM json_each(products.tags) WHERE json_each.value = ?)"
}

func selectSellerSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "email", "username", "role", "created_at")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
