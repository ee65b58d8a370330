package api

import (
	"context"                        // Context for Redis operations
	"net/http"                       // HTTP status codes
	"storefront/internal/repository" // Product filters
	"storefront/internal/service"    // Business logic
	"storefront/internal/utils"      // Utility functions
	"time"                           // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache key prefixes
const (
	productCachePrefix  = "products:"
	categoryCachePrefix = "categories:"
	brandCachePrefix    = "brands:"
)

// ListProductsHandler returns a filtered, sorted page of products
func ListProductsHandler(products *service.ProductService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := utils.ParsePage(c.Query("page"), c.Query("limit"), utils.DefaultLimit)
		filter := repository.ProductFilter{
			Search:     c.Query("search"),
			Categories: queryList(c, "category"),
			Brands:     queryList(c, "brand"),
			MinPrice:   queryFloat(c, "minPrice"),
			MaxPrice:   queryFloat(c, "maxPrice"),
			Sort:       c.Query("sort"),
			Page:       page,
			Limit:      limit,
		}
		ctx := c.Request.Context()
		cacheKey := productCachePrefix + "list:" + filter.CacheKey()
		var cached service.ProductPage
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		result, err := products.List(ctx, filter)
		if err != nil {
			respondError(c, err, "list products")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, result, ttl)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, result)
	}
}

// GetProductHandler returns one product, addressed by id or slug, with its reviews
func GetProductHandler(products *service.ProductService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := c.Param("id")
		cacheKey := productCachePrefix + "item:" + key
		var cached map[string]any
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		product, err := products.Get(ctx, key)
		if err != nil {
			respondError(c, err, "get product")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, product, ttl)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, product)
	}
}

// CreateProductHandler stores a new product
func CreateProductHandler(products *service.ProductService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		product, err := products.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "create product")
			return
		}
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,
			"slug":       product.Slug,
			"by":         c.GetUint("userID"),
		}).Info("Product created")
		invalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProductHandler applies a partial update to a product
func UpdateProductHandler(products *service.ProductService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductUpdate // Only present fields change
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		product, err := products.Update(c.Request.Context(), c.Param("id"), req) // Id or slug
		if err != nil {
			respondError(c, err, "update product")
			return
		}
		logrus.WithFields(logrus.Fields{"product_id": product.ID, "by": c.GetUint("userID")}).Info("Product updated")
		invalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProductHandler removes a product with its reviews and cart lines
func DeleteProductHandler(products *service.ProductService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.Delete(c.Request.Context(), c.Param("id")) // Id or slug
		if err != nil {
			respondError(c, err, "delete product")
			return
		}
		logrus.WithFields(logrus.Fields{"product_id": product.ID, "slug": product.Slug, "by": c.GetUint("userID")}).Info("Product deleted")
		invalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// invalidateCatalog drops every cached listing that a catalog write can change
func invalidateCatalog(ctx context.Context, rdb *redis.Client) {
	for _, prefix := range []string{productCachePrefix, categoryCachePrefix, brandCachePrefix} {
		if err := utils.DeleteCachePrefix(ctx, rdb, prefix); err != nil {
			logrus.WithFields(logrus.Fields{"prefix": prefix, "error": err.Error()}).Warn("Cache invalidation failed")
		}
	}
}
