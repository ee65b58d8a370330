package repository

import (
	"context"                    // Context for cancellation
	"math"                       // Rounding
	"storefront/internal/domain" // Domain models
	"strconv"                    // String conversion
	"strings"                    // String manipulation

	"gorm.io/gorm" // GORM ORM library
)

// Sort orders accepted by the product listing
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
	SortDiscount  = "discount"
)

var sortClauses = map[string]string{
	SortNewest:    "products.created_at DESC, products.id DESC",
	SortOldest:    "products.created_at ASC, products.id ASC",
	SortPriceAsc:  "products.price ASC, products.id ASC",
	SortPriceDesc: "products.price DESC, products.id DESC",
	SortTitleAsc:  "products.title ASC, products.id ASC",
	SortTitleDesc: "products.title DESC, products.id DESC",
	SortDiscount:  "products.discount_percentage DESC, products.id DESC",
}

// NormalizeSort maps user input such as "price-asc" onto a known order, defaulting to newest
func NormalizeSort(s string) string {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if _, ok := sortClauses[s]; ok {
		return s
	}
	return SortNewest
}

// ProductFilter selects and orders a page of products
type ProductFilter struct {
	Search     string
	Categories []string // Category slugs
	Brands     []string // Brand slugs
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Page       int
	Limit      int
}

// CacheKey renders the filter as a stable cache key suffix
func (f ProductFilter) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=" + strings.ToLower(strings.TrimSpace(f.Search)))
	b.WriteString(":c=" + strings.Join(f.Categories, ","))
	b.WriteString(":b=" + strings.Join(f.Brands, ","))
	if f.MinPrice != nil {
		b.WriteString(":min=" + strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		b.WriteString(":max=" + strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	b.WriteString(":s=" + NormalizeSort(f.Sort))
	b.WriteString(":p=" + strconv.Itoa(f.Page) + ":l=" + strconv.Itoa(f.Limit))
	return b.String()
}

// likeEscaper escapes LIKE wildcards with '!', which needs no quoting on MySQL or SQLite
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// RatingStat aggregates a product's reviews
type RatingStat struct {
	Average float64
	Count   int
}

// ProductRepository stores products
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a ProductRepository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// filtered builds the WHERE clause shared by the count and page queries
func (r *ProductRepository) filtered(ctx context.Context, f ProductFilter) *gorm.DB {
	db := r.db.WithContext(ctx) // Request-scoped session
	q := db.Model(&domain.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.active = ?", true) // Hide products of inactive categories
	if len(f.Categories) > 0 {
		q = q.Where("categories.slug IN ?", f.Categories) // Any of the category slugs
	}
	if len(f.Brands) > 0 {
		q = q.Where("products.brand_id IN (?)", db.Model(&domain.Brand{}).Select("id").Where("slug IN ?", f.Brands)) // Any of the brand slugs
	}
	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", *f.MinPrice) // Inclusive lower bound
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", *f.MaxPrice) // Inclusive upper bound
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%" // Wildcards in the input match literally
		q = q.Where("LOWER(products.title) LIKE ? ESCAPE '!' OR LOWER(products.description) LIKE ? ESCAPE '!' OR LOWER(products.tags) LIKE ? ESCAPE '!'", like, like, like)
	}
	return q
}

// List returns one page of products matching f and the total number of matches
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]domain.Product, int64, error) {
	var total int64 // Matches before paging
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	products := []domain.Product{} // Encodes as [] when empty
	err := r.filtered(ctx, f).
		Select("products.*").
		Preload("Category").
		Preload("Brand").
		Order(sortClauses[NormalizeSort(f.Sort)]). // Whitelisted ORDER BY
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&products).Error
	return products, total, err
}

// FindByID loads a product with its category and brand
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product // Product record
	err := r.db.WithContext(ctx).Preload("Category").Preload("Brand").First(&p, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// FindBySlug loads a product with its category and brand
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("Brand").Where("slug = ?", slug).First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// SlugExists reports whether another product already uses slug
func (r *ProductRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID) // Ignore the product being renamed
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Create inserts a product
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "Brand", "Reviews").Create(p).Error
}

// Save writes every column of an existing product
func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "Brand", "Reviews").Save(p).Error
}

// Delete removes a product together with its reviews and cart lines
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 { // Nothing deleted means no such product
			return ErrNotFound
		}
		return nil
	})
}

// RatingStats aggregates review ratings for the given products
func (r *ProductRepository) RatingStats(ctx context.Context, ids []uint) (map[uint]RatingStat, error) {
	out := make(map[uint]RatingStat, len(ids)) // Products without reviews stay zero
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ProductID uint
		Average   float64
		Total     int
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("product_id, AVG(rating) AS average, COUNT(*) AS total").
		Where("product_id IN ?", ids).
		Group("product_id"). // One row per product
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProductID] = RatingStat{Average: math.Round(row.Average*100) / 100, Count: row.Total}
	}
	return out, nil
}

// Count returns the number of products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, err
}

// CountLowStock returns the number of products with stock below threshold
func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("stock < ?", threshold).Count(&n).Error // Strictly below threshold
	return n, err
}
