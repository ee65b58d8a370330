package repository

import (
	"context"                    // Context for cancellation
	"storefront/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// CartRepository stores carts and their items
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a CartRepository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Transaction runs fn with a repository bound to a single database transaction
func (r *CartRepository) Transaction(ctx context.Context, fn func(tx *CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CartRepository{db: tx}) // Every call inside fn shares tx
	})
}

// GetOrCreate returns the user's cart, creating an empty one on first use
func (r *CartRepository) GetOrCreate(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart                                                                       // Cart record
	err := r.db.WithContext(ctx).Where(domain.Cart{UserID: userID}).FirstOrCreate(&cart).Error // Created lazily
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Load reads a cart with its items and their products
func (r *CartRepository) Load(ctx context.Context, cartID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product"). // Product details for display
		First(&cart, cartID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &cart, nil
}

// FindProduct loads the product a cart line refers to
func (r *CartRepository) FindProduct(ctx context.Context, productID uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, productID).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// FindItem returns the cart line for productID
func (r *CartRepository) FindItem(ctx context.Context, cartID, productID uint) (*domain.CartItem, error) {
	var item domain.CartItem // Cart line
	err := r.db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// CreateItem inserts a new cart line
func (r *CartRepository) CreateItem(ctx context.Context, item *domain.CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(item).Error // Never upsert the product
}

// SetItemQuantity overwrites the quantity of a cart line
func (r *CartRepository) SetItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	return r.db.WithContext(ctx).Model(&domain.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// IncrementItem adds delta units to a cart line in one statement, unless the
// result would exceed limit. It reports whether the line changed.
func (r *CartRepository) IncrementItem(ctx context.Context, itemID uint, delta, limit int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("id = ? AND quantity + ? <= ?", itemID, delta, limit). // Stock guard
		Update("quantity", gorm.Expr("quantity + ?", delta))         // Atomic increment
	return res.RowsAffected > 0, res.Error
}

// DeleteItem removes a cart line
func (r *CartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.CartItem{}, itemID).Error
}

// Clear removes every line of a cart
func (r *CartRepository) Clear(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error // Keep the cart row itself
}

// Count returns the number of carts
func (r *CartRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Cart{}).Count(&n).Error
	return n, err
}
