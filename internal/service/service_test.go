package service

import (
	"storefront/internal/repository"
	"storefront/internal/testutil"
	"strconv"
	"testing"
	"time"

	"gorm.io/gorm"
)

type services struct {
	db       *gorm.DB
	products *ProductService
	catalog  *CatalogService
	carts    *CartService
	auth     *AuthService
	reviews  *ReviewService
	admin    *AdminService
}

func newServices(t *testing.T) *services {
	gdb := testutil.OpenDB(t)
	productRepo := repository.NewProductRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	brandRepo := repository.NewBrandRepository(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)
	cartRepo := repository.NewCartRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)

	products := NewProductService(productRepo, categoryRepo, brandRepo, reviewRepo)
	return &services{
		db:       gdb,
		products: products,
		catalog:  NewCatalogService(categoryRepo, brandRepo),
		carts:    NewCartService(cartRepo),
		auth:     NewAuthService(userRepo, "test-secret", time.Hour),
		reviews:  NewReviewService(products, reviewRepo),
		admin:    NewAdminService(userRepo, productRepo, categoryRepo, brandRepo, reviewRepo, cartRepo),
	}
}

func float(v float64) *float64 { return &v }

func idKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }
