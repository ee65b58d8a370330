package service

import (
	"context"                        // Context for cancellation
	"errors"                         // Error inspection
	"fmt"                            // Error wrapping
	"storefront/internal/domain"     // Domain models
	"storefront/internal/repository" // Data access
	"storefront/internal/utils"      // Utility functions
	"strconv"                        // String conversion
	"strings"                        // String manipulation
)

// ProductInput creates a product
type ProductInput struct {
	Title              string   `json:"title" binding:"required,max=255"`
	Description        string   `json:"description"`
	Price              *float64 `json:"price" binding:"required,gte=0"`
	DiscountPercentage float64  `json:"discountPercentage" binding:"gte=0,lte=100"`
	Stock              int      `json:"stock" binding:"gte=0"`
	Tags               []string `json:"tags"`
	Images             []string `json:"images"`
	Thumbnail          string   `json:"thumbnail" binding:"max=500"`
	Slug               string   `json:"slug" binding:"max=191"`
	CategoryID         uint     `json:"categoryId" binding:"required"`
	BrandID            *uint    `json:"brandId"`
}

// ProductUpdate changes the fields that are present
type ProductUpdate struct {
	Title              *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Description        *string   `json:"description"`
	Price              *float64  `json:"price" binding:"omitempty,gte=0"`
	DiscountPercentage *float64  `json:"discountPercentage" binding:"omitempty,gte=0,lte=100"`
	Stock              *int      `json:"stock" binding:"omitempty,gte=0"`
	Tags               *[]string `json:"tags"`
	Images             *[]string `json:"images"`
	Thumbnail          *string   `json:"thumbnail" binding:"omitempty,max=500"`
	Slug               *string   `json:"slug" binding:"omitempty,max=191"`
	CategoryID         *uint     `json:"categoryId"`
	BrandID            *uint     `json:"brandId"`
}

// ProductPage is the paginated listing envelope
type ProductPage struct {
	Products   []domain.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// ProductService lists and manages products
type ProductService struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	brands     *repository.BrandRepository
	reviews    *repository.ReviewRepository
}

// NewProductService creates a ProductService
func NewProductService(products *repository.ProductRepository, categories *repository.CategoryRepository, brands *repository.BrandRepository, reviews *repository.ReviewRepository) *ProductService {
	return &ProductService{products: products, categories: categories, brands: brands, reviews: reviews}
}

// List returns a page of products matching the filter
func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) (*ProductPage, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, fmt.Errorf("%w: minPrice must not exceed maxPrice", ErrInvalidInput)
	}
	f.Sort = repository.NormalizeSort(f.Sort) // Unknown sorts fall back to newest
	products, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	stats, err := s.products.RatingStats(ctx, ids) // One query for the whole page
	if err != nil {
		return nil, err
	}
	for i := range products {
		st := stats[products[i].ID]
		products[i].AverageRating = st.Average
		products[i].ReviewCount = st.Count
		products[i].FinalPrice = products[i].DiscountedPrice() // Price after discount
	}
	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: utils.TotalPages(total, f.Limit),
	}, nil
}

// Find resolves a numeric id or a slug to a product
func (s *ProductService) Find(ctx context.Context, key string) (*domain.Product, error) {
	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		return s.products.FindByID(ctx, uint(id))
	}
	return s.products.FindBySlug(ctx, key) // Anything else is a slug
}

// Get returns a product with its reviews and average rating
func (s *ProductService) Get(ctx context.Context, key string) (*domain.Product, error) {
	p, err := s.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProduct(ctx, p.ID) // Newest first
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews
	p.AverageRating = domain.AverageRating(reviews)
	p.ReviewCount = len(reviews)
	p.FinalPrice = p.DiscountedPrice()
	return p, nil
}

// Create stores a new product with a unique slug
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Price == nil {
		return nil, fmt.Errorf("%w: title and price are required", ErrInvalidInput)
	}
	if in.BrandID != nil && *in.BrandID == 0 {
		in.BrandID = nil // 0 means no brand
	}
	if err := s.checkReferences(ctx, in.CategoryID, in.BrandID); err != nil {
		return nil, err
	}
	slug, err := s.productSlug(ctx, firstNonEmpty(in.Slug, title), 0)
	if err != nil {
		return nil, err
	}
	p := &domain.Product{
		Title:              title,
		Description:        in.Description,
		Price:              *in.Price,
		DiscountPercentage: in.DiscountPercentage,
		Stock:              in.Stock,
		Tags:               cleanList(in.Tags),
		Images:             cleanList(in.Images),
		Thumbnail:          strings.TrimSpace(in.Thumbnail),
		Slug:               slug,
		CategoryID:         in.CategoryID,
		BrandID:            in.BrandID,
	}
	if p.Thumbnail == "" && len(p.Images) > 0 {
		p.Thumbnail = p.Images[0] // Default to the first image
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, p.ID) // Reload with associations
}

// Update applies the present fields of in to the product identified by key
func (s *ProductService) Update(ctx context.Context, key string, in ProductUpdate) (*domain.Product, error) {
	p, err := s.Find(ctx, key) // Numeric id or slug
	if err != nil {
		return nil, err
	}
	categoryID, brandID := p.CategoryID, p.BrandID
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		brandID = in.BrandID
		if *in.BrandID == 0 {
			brandID = nil // 0 detaches the brand
		}
	}
	if err := s.checkReferences(ctx, categoryID, brandID); err != nil {
		return nil, err
	}
	p.CategoryID, p.BrandID = categoryID, brandID
	p.Category, p.Brand = nil, nil // Stale preloads must not be saved

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		p.Title = title
	}
	switch {
	case in.Slug != nil && strings.TrimSpace(*in.Slug) != "":
		if p.Slug, err = s.productSlug(ctx, *in.Slug, p.ID); err != nil {
			return nil, err
		}
	case in.Title != nil:
		if p.Slug, err = s.productSlug(ctx, p.Title, p.ID); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DiscountPercentage != nil {
		p.DiscountPercentage = *in.DiscountPercentage
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Tags != nil {
		p.Tags = cleanList(*in.Tags)
	}
	if in.Images != nil {
		p.Images = cleanList(*in.Images)
	}
	if in.Thumbnail != nil {
		p.Thumbnail = strings.TrimSpace(*in.Thumbnail)
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, p.ID)
}

// Delete removes the product identified by key and everything that references it
func (s *ProductService) Delete(ctx context.Context, key string) (*domain.Product, error) {
	p, err := s.Find(ctx, key) // Numeric id or slug
	if err != nil {
		return nil, err
	}
	if err := s.products.Delete(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) productSlug(ctx context.Context, base string, excludeID uint) (string, error) {
	return uniqueSlug(ctx, base, func(ctx context.Context, slug string) (bool, error) {
		return s.products.SlugExists(ctx, slug, excludeID)
	})
}

func (s *ProductService) checkReferences(ctx context.Context, categoryID uint, brandID *uint) error {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", ErrInvalidInput, categoryID)
		}
		return err
	}
	if brandID != nil {
		if _, err := s.brands.FindByID(ctx, *brandID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: brand %d does not exist", ErrInvalidInput, *brandID)
			}
			return err
		}
	}
	return nil
}

// cleanList trims entries and drops empty ones
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
