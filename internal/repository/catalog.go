package repository

import (
	"context"                    // Context for cancellation
	"storefront/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// CategoryRepository stores categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns categories ordered by name with their product counts
func (r *CategoryRepository) List(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	db := r.db.WithContext(ctx)
	q := db.Order("name ASC, id ASC")
	if !includeInactive {
		q = q.Where("active = ?", true) // Public listings only
	}
	categories := []domain.Category{}
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	counts, err := countBy(db, &domain.Product{}, "category_id") // Products per category
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].ID]
	}
	return categories, nil
}

// FindByID loads a category
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category // Category record
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// SlugExists reports whether a category already uses slug
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Count returns the number of categories
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Count(&n).Error
	return n, err
}

// BrandRepository stores brands
type BrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a BrandRepository
func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// List returns brands ordered by name with their product counts
func (r *BrandRepository) List(ctx context.Context, includeInactive bool) ([]domain.Brand, error) {
	db := r.db.WithContext(ctx)
	q := db.Order("name ASC, id ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	brands := []domain.Brand{}
	if err := q.Find(&brands).Error; err != nil {
		return nil, err
	}
	counts, err := countBy(db, &domain.Product{}, "brand_id") // Products per brand
	if err != nil {
		return nil, err
	}
	for i := range brands {
		brands[i].ProductCount = counts[brands[i].ID]
	}
	return brands, nil
}

// FindByID loads a brand
func (r *BrandRepository) FindByID(ctx context.Context, id uint) (*domain.Brand, error) {
	var b domain.Brand // Brand record
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// SlugExists reports whether a brand already uses slug
func (r *BrandRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Brand{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// Create inserts a brand
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Count returns the number of brands
func (r *BrandRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Brand{}).Count(&n).Error
	return n, err
}
