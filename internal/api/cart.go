package api

import (
	"net/http"                       // HTTP status codes
	"storefront/internal/middleware" // Session accessors
	"storefront/internal/service"    // Business logic

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CartItemRequest addresses a product in the caller's cart
type CartItemRequest struct {
	ProductID uint `json:"productId" form:"productId" binding:"required"` // Product to change
	Quantity  *int `json:"quantity" form:"quantity"`                      // Units; meaning depends on the route
}

// GetCartHandler returns the caller's cart
func GetCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := carts.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "get cart")
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// AddToCartHandler adds units of a product, incrementing an existing line
func AddToCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		quantity := 1 // Default to a single unit
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		cart, err := carts.Add(c.Request.Context(), userID, req.ProductID, quantity)
		if err != nil {
			respondError(c, err, "add product to cart")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": req.ProductID,
			"quantity":   quantity,
		}).Info("Cart item added")
		c.JSON(http.StatusOK, cart)
	}
}

// UpdateCartItemHandler sets the quantity of a cart line; 0 removes it
func UpdateCartItemHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		if req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
			return
		}
		cart, err := carts.SetQuantity(c.Request.Context(), userID, req.ProductID, *req.Quantity)
		if err != nil {
			respondError(c, err, "update cart item")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": req.ProductID,
			"quantity":   *req.Quantity,
		}).Info("Cart item updated")
		c.JSON(http.StatusOK, cart)
	}
}

// RemoveCartItemHandler removes a cart line, or some units of it when quantity
// is given. With ?all=true and no product it empties the cart.
func RemoveCartItemHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		if c.Query("all") == "true" && c.Query("productId") == "" {
			cart, err := carts.Clear(ctx, userID)
			if err != nil {
				respondError(c, err, "clear cart")
				return
			}
			logrus.WithField("user_id", userID).Info("Cart cleared")
			c.JSON(http.StatusOK, cart)
			return
		}
		var req CartItemRequest
		var err error
		if c.Query("productId") != "" || c.Request.ContentLength == 0 {
			err = c.ShouldBindQuery(&req)
		} else {
			err = c.ShouldBindJSON(&req)
		}
		if err != nil {
			bindError(c, err)
			return
		}
		quantity := 0 // Zero removes the whole line
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		cart, err := carts.Remove(ctx, userID, req.ProductID, quantity)
		if err != nil {
			respondError(c, err, "remove cart item")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": req.ProductID,
			"quantity":   quantity,
		}).Info("Cart item removed")
		c.JSON(http.StatusOK, cart)
	}
}
