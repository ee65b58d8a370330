package domain

import (
	"math"
	"time"
)

// Product Model
type Product struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Title              string    `gorm:"size:255;not null" json:"title"`               // Display title
	Description        string    `gorm:"type:text" json:"description"`                 // Long description
	Price              float64   `gorm:"not null;index" json:"price"`                  // List price
	DiscountPercentage float64   `gorm:"not null;default:0" json:"discountPercentage"` // 0-100
	Stock              int       `gorm:"not null;default:0" json:"stock"`              // Units available
	Tags               []string  `gorm:"type:text;serializer:json" json:"tags"`        // Free-form tags
	Images             []string  `gorm:"type:text;serializer:json" json:"images"`      // Image URLs
	Thumbnail          string    `gorm:"size:500" json:"thumbnail"`                    // Listing image URL
	Slug               string    `gorm:"size:191;uniqueIndex;not null" json:"slug"`    // URL-safe unique name
	CategoryID         uint      `gorm:"not null;index" json:"categoryId"`             // Foreign key to Category
	Category           *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	BrandID            *uint     `gorm:"index" json:"brandId"` // Optional foreign key to Brand
	Brand              *Brand    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"brand,omitempty"`
	Reviews            []Review  `gorm:"constraint:OnDelete:CASCADE;" json:"reviews,omitempty"` // Product reviews
	AverageRating      float64   `gorm:"-" json:"averageRating"`                                // Computed from reviews
	ReviewCount        int       `gorm:"-" json:"reviewCount"`                                  // Computed from reviews
	FinalPrice         float64   `gorm:"-" json:"finalPrice"`                                   // Price after discount
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DiscountedPrice applies the discount percentage and rounds to cents
func (p *Product) DiscountedPrice() float64 {
	final := p.Price * (1 - p.DiscountPercentage/100)
	return math.Round(final*100) / 100
}

// Review Model
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                       // Primary key
	Rating    int       `gorm:"not null" json:"rating"`                                     // 1-5
	Comment   string    `gorm:"type:text" json:"comment"`                                   // Free text
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"userId"` // Author
	User      *User     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`                      // Author record
	Author    string    `gorm:"-" json:"author"`                                            // Author display name
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product;index" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AverageRating folds the ratings into their arithmetic mean, 0 when empty
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*100) / 100
}
