package api

import (
	"net/http"                       // HTTP status codes
	"storefront/internal/config"     // Application configuration
	"storefront/internal/domain"     // Role names
	"storefront/internal/middleware" // Custom middleware
	"storefront/internal/repository" // Data access
	"storefront/internal/service"    // Business logic
	"time"                           // Durations

	"github.com/gin-contrib/cors"  // CORS for the browser UI
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires repositories, services and handlers into a gin engine.
// rdb may be nil, which disables response caching and login throttling.
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	// Repositories
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	brands := repository.NewBrandRepository(db)
	reviews := repository.NewReviewRepository(db)
	carts := repository.NewCartRepository(db)

	// Services
	productSvc := service.NewProductService(products, categories, brands, reviews)
	catalogSvc := service.NewCatalogService(categories, brands)
	cartSvc := service.NewCartService(carts)
	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	reviewSvc := service.NewReviewService(productSvc, reviews)
	adminSvc := service.NewAdminService(users, products, categories, brands, reviews, carts)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), cors.New(corsConfig(cfg)))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.GET("/health", HealthHandler(db))

	authRequired := middleware.JWTAuthMiddleware(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(users, domain.RoleAdmin)
	ttl := cfg.CacheTTL

	api := r.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/register", RegisterHandler(authSvc))
	auth.POST("/login", middleware.LoginRateLimit(rdb), LoginHandler(authSvc))
	auth.GET("/session", authRequired, SessionHandler())

	// Public catalog routes
	api.GET("/products", ListProductsHandler(productSvc, rdb, ttl))
	api.GET("/products/:id", GetProductHandler(productSvc, rdb, ttl))
	api.GET("/products/:id/reviews", ListReviewsHandler(reviewSvc))
	api.GET("/categories", ListCategoriesHandler(catalogSvc, rdb, ttl))
	api.GET("/brands", ListBrandsHandler(catalogSvc, rdb, ttl))

	// Signed-in routes
	signedIn := api.Group("", authRequired)
	signedIn.POST("/products/:id/reviews", SubmitReviewHandler(reviewSvc, rdb))
	signedIn.GET("/cart", GetCartHandler(cartSvc))
	signedIn.POST("/cart", AddToCartHandler(cartSvc))
	signedIn.PUT("/cart/items", UpdateCartItemHandler(cartSvc))
	signedIn.DELETE("/cart/items", RemoveCartItemHandler(cartSvc))
	signedIn.GET("/profile", GetProfileHandler(authSvc))
	signedIn.PUT("/profile", UpdateProfileHandler(authSvc, rdb))

	// Catalog management (admin only)
	manage := api.Group("", authRequired, adminOnly)
	manage.POST("/products", CreateProductHandler(productSvc, rdb))
	manage.PUT("/products/:id", UpdateProductHandler(productSvc, rdb))
	manage.DELETE("/products/:id", DeleteProductHandler(productSvc, rdb))
	manage.POST("/categories", CreateCategoryHandler(catalogSvc, rdb))
	manage.POST("/brands", CreateBrandHandler(catalogSvc, rdb))

	// Admin panel
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.GET("/stats", StatsHandler(adminSvc))
	admin.GET("/users", ListUsersHandler(adminSvc))
	admin.PUT("/users/:id/role", SetUserRoleHandler(adminSvc))

	return r
}

// HealthHandler reports whether the database answers
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = cfg.CORSOrigins
	}
	return cc
}
