package domain

import (
	"math"
	"time"
)

// Cart Model, one per user
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`        // Owner
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"` // Line items
	ItemCount int        `gorm:"-" json:"itemCount"`                        // Sum of quantities
	Subtotal  float64    `gorm:"-" json:"subtotal"`                         // Sum of discounted line totals
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem Model, unique per cart and product
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                         // Primary key
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cartId"`          // Foreign key to Cart
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product;index" json:"productId"` // Foreign key to Product
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;" json:"product,omitempty"`        // Product snapshot for display
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // Always >= 1
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Totals fills ItemCount and Subtotal from the loaded items
func (c *Cart) Totals() {
	count := 0
	subtotal := 0.0
	for _, item := range c.Items {
		count += item.Quantity
		if item.Product != nil {
			subtotal += item.Product.DiscountedPrice() * float64(item.Quantity)
		}
	}
	c.ItemCount = count
	c.Subtotal = math.Round(subtotal*100) / 100
}
