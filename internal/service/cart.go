package service

import (
	"context"                        // Context for cancellation
	"errors"                         // Error inspection
	"fmt"                            // Error wrapping
	"storefront/internal/domain"     // Domain models
	"storefront/internal/repository" // Data access
)

// CartService reconciles cart quantities against stock
type CartService struct {
	carts *repository.CartRepository
}

// NewCartService creates a CartService
func NewCartService(carts *repository.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// Get returns the user's cart with totals, creating it on first use
func (s *CartService) Get(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, cart.ID)
}

// Add puts quantity units of a product in the cart. A product already in the
// cart has its quantity incremented instead of getting a second line.
func (s *CartService) Add(ctx context.Context, userID, productID uint, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	var cartID uint
	err := s.carts.Transaction(ctx, func(tx *repository.CartRepository) error {
		cart, err := tx.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID // Needed to reload after commit
		product, err := tx.FindProduct(ctx, productID)
		if err != nil {
			return err
		}
		item, err := tx.FindItem(ctx, cart.ID, productID)
		switch {
		case err == nil:
			// Increment in place so concurrent adds of the same product both count
			changed, err := tx.IncrementItem(ctx, item.ID, quantity, product.Stock)
			if err != nil {
				return err
			}
			if !changed {
				return stockError(product, item.Quantity+quantity)
			}
			return nil
		case errors.Is(err, repository.ErrNotFound):
			if quantity > product.Stock {
				return stockError(product, quantity)
			}
			return tx.CreateItem(ctx, &domain.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}) // First line for this product
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, cartID)
}

// SetQuantity overwrites the quantity of a cart line; 0 removes the line
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	var cartID uint
	err := s.carts.Transaction(ctx, func(tx *repository.CartRepository) error {
		cart, err := tx.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID
		item, err := tx.FindItem(ctx, cart.ID, productID)
		if err != nil {
			return err
		}
		if quantity == 0 {
			return tx.DeleteItem(ctx, item.ID) // Last unit or whole line
		}
		product, err := tx.FindProduct(ctx, productID)
		if err != nil {
			return err
		}
		if quantity > product.Stock {
			return stockError(product, quantity)
		}
		return tx.SetItemQuantity(ctx, item.ID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, cartID)
}

// Remove takes quantity units of a product out of the cart. Removing the last
// unit, or passing 0, deletes the line.
func (s *CartService) Remove(ctx context.Context, userID, productID uint, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	var cartID uint
	err := s.carts.Transaction(ctx, func(tx *repository.CartRepository) error {
		cart, err := tx.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID
		item, err := tx.FindItem(ctx, cart.ID, productID)
		if err != nil {
			return err
		}
		if quantity == 0 || quantity >= item.Quantity {
			return tx.DeleteItem(ctx, item.ID)
		}
		return tx.SetItemQuantity(ctx, item.ID, item.Quantity-quantity) // Some units remain
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, cartID)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.load(ctx, cart.ID)
}

func (s *CartService) load(ctx context.Context, cartID uint) (*domain.Cart, error) {
	cart, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if p := cart.Items[i].Product; p != nil {
			p.FinalPrice = p.DiscountedPrice()
		}
	}
	cart.Totals() // Item count and subtotal
	return cart, nil
}

func stockError(p *domain.Product, requested int) error {
	return fmt.Errorf("%w: %q has %d in stock, %d requested", ErrInsufficientStock, p.Title, p.Stock, requested)
}
