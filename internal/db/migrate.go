package db

import (
	"errors"                     // Error inspection
	"fmt"                        // Error wrapping
	"storefront/internal/config" // Application configuration
	"storefront/internal/domain" // Importing domain models
	"strings"                    // Email normalization

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table managed by the migration, in dependency order
var Models = []any{
	&domain.Role{},
	&domain.User{},
	&domain.Profile{},
	&domain.Category{},
	&domain.Brand{},
	&domain.Product{},
	&domain.Review{},
	&domain.Cart{},
	&domain.CartItem{},
}

// Migrate creates the schema and seeds roles and the optional default admin
func Migrate(db *gorm.DB, cfg *config.Config) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := SeedRoles(db); err != nil {
		return err
	}
	if cfg != nil && cfg.CreateAdmin {
		if err := SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}
	logrus.Info("Migration completed.")
	return nil
}

// SeedRoles inserts the default roles that do not exist yet
func SeedRoles(db *gorm.DB) error {
	for _, role := range domain.DefaultRoles {
		r := role
		if err := db.Where("name = ?", r.Name).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}
	return nil
}

// SeedAdmin creates an admin account when no admin exists
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required when CREATE_ADMIN is set")
	}
	var role domain.Role
	if err := db.Where("name = ?", domain.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("load admin role: %w", err)
	}
	var count int64
	if err := db.Model(&domain.User{}).Where("role_id = ?", role.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil // An admin already exists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := domain.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hash),
		RoleID:   role.ID,
		Profile:  &domain.Profile{FirstName: "Admin"},
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logrus.WithField("email", admin.Email).Info("Default admin created")
	return nil
}
