package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                         // Primary key
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`                   // Unique, lower-cased email
	Password  string    `gorm:"not null" json:"-"`                                            // Hashed password, never serialized
	RoleID    uint      `gorm:"not null;index" json:"roleId"`                                 // Foreign key to Role
	Role      Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role"`   // Permission level
	Profile   *Profile  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"` // One-to-one contact details
	CreatedAt time.Time `json:"createdAt"`                                                    // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt"`                                                    // Last update timestamp
}

// Profile Model
type Profile struct {
	ID        uint   `gorm:"primaryKey" json:"id"`      // Primary key
	UserID    uint   `gorm:"uniqueIndex" json:"userId"` // Foreign key to User
	FirstName string `gorm:"size:100" json:"firstName"` // Given name
	LastName  string `gorm:"size:100" json:"lastName"`  // Family name
	Phone     string `gorm:"size:40" json:"phone"`      // Contact phone
	Address   string `gorm:"size:255" json:"address"`   // Street address
	City      string `gorm:"size:100" json:"city"`      // City
	Country   string `gorm:"size:100" json:"country"`   // Country
	Company   string `gorm:"size:150" json:"company"`   // Employer
	JobTitle  string `gorm:"size:150" json:"jobTitle"`  // Position at employer
}

// DisplayName returns the profile's full name, or an empty string
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}
