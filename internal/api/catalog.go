package api

import (
	"net/http"
	"storefront/internal/service"
	"storefront/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ListCategoriesHandler returns active categories; ?all=true includes inactive ones
func ListCategoriesHandler(catalog *service.CatalogService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		all := c.Query("all") == "true"
		cacheKey := categoryCachePrefix + "all=" + c.DefaultQuery("all", "false")
		var cached []map[string]any
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, gin.H{"categories": cached})
			return
		}
		categories, err := catalog.ListCategories(ctx, all)
		if err != nil {
			respondError(c, err, "list categories")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, categories, ttl)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// CreateCategoryHandler stores a new category
func CreateCategoryHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CategoryInput
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		category, err := catalog.CreateCategory(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "create category")
			return
		}
		logrus.WithFields(logrus.Fields{"category_id": category.ID, "slug": category.Slug}).Info("Category created")
		invalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, category)
	}
}

// ListBrandsHandler returns active brands; ?all=true includes inactive ones
func ListBrandsHandler(catalog *service.CatalogService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		all := c.Query("all") == "true"
		cacheKey := brandCachePrefix + "all=" + c.DefaultQuery("all", "false")
		var cached []map[string]any
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, gin.H{"brands": cached})
			return
		}
		brands, err := catalog.ListBrands(ctx, all)
		if err != nil {
			respondError(c, err, "list brands")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, brands, ttl)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, gin.H{"brands": brands})
	}
}

// CreateBrandHandler stores a new brand
func CreateBrandHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.BrandInput
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		brand, err := catalog.CreateBrand(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "create brand")
			return
		}
		logrus.WithFields(logrus.Fields{"brand_id": brand.ID, "slug": brand.Slug}).Info("Brand created")
		invalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, brand)
	}
}
