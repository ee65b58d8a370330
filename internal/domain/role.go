package domain

// Role names seeded by the migration
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role Model
type Role struct {
	ID    uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Name  string `gorm:"size:50;uniqueIndex;not null" json:"name"` // Role name, e.g. admin
	Level int    `gorm:"not null;default:1" json:"level"`          // Higher level means more privileges
}

// DefaultRoles are created on migration when missing
var DefaultRoles = []Role{
	{Name: RoleUser, Level: 1},
	{Name: RoleAdmin, Level: 100},
}
