package service

import (
	"context"                        // Context for cancellation
	"errors"                         // Error inspection
	"fmt"                            // Error wrapping
	"storefront/internal/domain"     // Domain models
	"storefront/internal/repository" // Data access
	"storefront/internal/utils"      // Utility functions
)

// Stats summarizes the store for the admin dashboard
type Stats struct {
	Users      int64 `json:"users"`
	Products   int64 `json:"products"`
	Categories int64 `json:"categories"`
	Brands     int64 `json:"brands"`
	Reviews    int64 `json:"reviews"`
	Carts      int64 `json:"carts"`
	LowStock   int64 `json:"lowStock"`
}

// UserPage is one page of the admin user list
type UserPage struct {
	Users      []domain.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Pages      []int         `json:"pages"`
}

// AdminService backs the admin panel
type AdminService struct {
	users      *repository.UserRepository
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	brands     *repository.BrandRepository
	reviews    *repository.ReviewRepository
	carts      *repository.CartRepository
}

// NewAdminService creates an AdminService
func NewAdminService(users *repository.UserRepository, products *repository.ProductRepository, categories *repository.CategoryRepository, brands *repository.BrandRepository, reviews *repository.ReviewRepository, carts *repository.CartRepository) *AdminService {
	return &AdminService{users: users, products: products, categories: categories, brands: brands, reviews: reviews, carts: carts}
}

// Stats counts the store's records
func (s *AdminService) Stats(ctx context.Context, lowStockThreshold int) (*Stats, error) {
	var st Stats // Filled by the counters below
	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&st.Users, s.users.Count},
		{&st.Products, s.products.Count},
		{&st.Categories, s.categories.Count},
		{&st.Brands, s.brands.Count},
		{&st.Reviews, s.reviews.Count},
		{&st.Carts, s.carts.Count},
		{&st.LowStock, func(ctx context.Context) (int64, error) { return s.products.CountLowStock(ctx, lowStockThreshold) }},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n // Store the count
	}
	return &st, nil
}

// ListUsers returns a page of users with selector page numbers
func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	users, total, err := s.users.List(ctx, utils.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}
	pages := utils.TotalPages(total, limit)
	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
		Pages:      utils.PageNumbers(page, pages, 1), // One sibling either side
	}, nil
}

// SetRole moves a user to the named role
func (s *AdminService) SetRole(ctx context.Context, userID uint, roleName string) (*domain.User, error) {
	role, err := s.users.RoleByName(ctx, roleName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, roleName)
	} else if err != nil {
		return nil, err
	}
	if err := s.users.SetRole(ctx, userID, role.ID); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}
