// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"storefront/internal/db"
	"storefront/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database private to the test
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // One connection keeps the in-memory database consistent
	require.NoError(t, db.Migrate(gdb, nil))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

// CreateUser inserts a user with the named role and password "password123"
func CreateUser(t *testing.T, gdb *gorm.DB, email, role string) domain.User {
	t.Helper()
	var r domain.Role
	require.NoError(t, gdb.Where("name = ?", role).First(&r).Error)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{
		Email:    email,
		Password: string(hash),
		RoleID:   r.ID,
		Profile:  &domain.Profile{FirstName: "Test", LastName: "User"},
	}
	require.NoError(t, gdb.Create(&user).Error)
	user.Role = r
	return user
}

// CreateCategory inserts an active category
func CreateCategory(t *testing.T, gdb *gorm.DB, name, slug string) domain.Category {
	t.Helper()
	c := domain.Category{Name: name, Slug: slug, Active: true}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

// CreateBrand inserts an active brand
func CreateBrand(t *testing.T, gdb *gorm.DB, name, slug string) domain.Brand {
	t.Helper()
	b := domain.Brand{Name: name, Slug: slug, Active: true}
	require.NoError(t, gdb.Create(&b).Error)
	return b
}

// CreateProduct inserts a product in the given category and optional brand
func CreateProduct(t *testing.T, gdb *gorm.DB, p domain.Product) domain.Product {
	t.Helper()
	if p.Slug == "" {
		p.Slug = strings.ToLower(strings.ReplaceAll(p.Title, " ", "-"))
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}
