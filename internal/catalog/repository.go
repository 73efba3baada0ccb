package catalog

import (
	"context"
	"strings"

	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists and reads catalog products.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Count reports the number of products, active or not.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertBatch inserts products, replacing existing rows on slug
// conflicts so re-seeding stays idempotent.
func (r *Repository) UpsertBatch(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "brand", "category", "weight",
				"price_paise", "compare_at_price_paise",
				"delivery_estimate", "description", "brand_logo_url",
				"tags", "images", "is_active", "updated_at",
			}),
		}).
		Create(&products).Error
}

// List returns all active products ordered by category then name.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category, name").
		Find(&products).Error
	return products, err
}

// ListByCategory returns active products in one category.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND category = ?", true, category).
		Order("name").
		Find(&products).Error
	return products, err
}

// GetBySlug loads a single active product.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Search matches the query against name, brand, and tags,
// case-insensitively.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Product, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(
			r.db.Where("LOWER(name) LIKE ?", needle).
				Or("LOWER(brand) LIKE ?", needle).
				Or("LOWER(CAST(tags AS TEXT)) LIKE ?", needle),
		).
		Order("name").
		Find(&products).Error
	return products, err
}

// Categories lists the distinct active categories in display order.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
