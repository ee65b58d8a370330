package domain

import "time"

// Category Model
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	Name         string    `gorm:"size:150;not null" json:"name"`             // Display name
	Slug         string    `gorm:"size:191;uniqueIndex;not null" json:"slug"` // URL-safe unique name
	Active       bool      `gorm:"not null" json:"active"`                    // Inactive categories are hidden from listings
	ProductCount int64     `gorm:"-" json:"productCount"`                     // Computed, not stored
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Brand Model
type Brand struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	Name         string    `gorm:"size:150;not null" json:"name"`             // Display name
	Slug         string    `gorm:"size:191;uniqueIndex;not null" json:"slug"` // URL-safe unique name
	Logo         string    `gorm:"size:500" json:"logo"`                      // Logo URL
	Website      string    `gorm:"size:500" json:"website"`                   // Brand website
	Active       bool      `gorm:"not null" json:"active"`                    // Inactive brands are hidden from listings
	ProductCount int64     `gorm:"-" json:"productCount"`                     // Computed, not stored
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
