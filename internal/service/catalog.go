package service

import (
	"context"                        // Context for cancellation
	"fmt"                            // Error wrapping
	"storefront/internal/domain"     // Domain models
	"storefront/internal/repository" // Data access
	"strings"                        // String manipulation
)

// CategoryInput creates a category
type CategoryInput struct {
	Name   string `json:"name" binding:"required,max=150"`
	Slug   string `json:"slug" binding:"max=191"`
	Active *bool  `json:"active"`
}

// BrandInput creates a brand
type BrandInput struct {
	Name    string `json:"name" binding:"required,max=150"`
	Slug    string `json:"slug" binding:"max=191"`
	Logo    string `json:"logo" binding:"omitempty,url,max=500"`
	Website string `json:"website" binding:"omitempty,url,max=500"`
	Active  *bool  `json:"active"`
}

// CatalogService manages categories and brands
type CatalogService struct {
	categories *repository.CategoryRepository
	brands     *repository.BrandRepository
}

// NewCatalogService creates a CatalogService
func NewCatalogService(categories *repository.CategoryRepository, brands *repository.BrandRepository) *CatalogService {
	return &CatalogService{categories: categories, brands: brands}
}

// ListCategories returns active categories, or all of them when includeInactive is set
func (s *CatalogService) ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	return s.categories.List(ctx, includeInactive)
}

// CreateCategory stores a new category with a unique slug
func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	slug, err := uniqueSlug(ctx, firstNonEmpty(in.Slug, name), s.categories.SlugExists)
	if err != nil {
		return nil, err
	}
	c := &domain.Category{Name: name, Slug: slug, Active: boolOr(in.Active, true)} // Active unless stated
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListBrands returns active brands, or all of them when includeInactive is set
func (s *CatalogService) ListBrands(ctx context.Context, includeInactive bool) ([]domain.Brand, error) {
	return s.brands.List(ctx, includeInactive)
}

// CreateBrand stores a new brand with a unique slug
func (s *CatalogService) CreateBrand(ctx context.Context, in BrandInput) (*domain.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	slug, err := uniqueSlug(ctx, firstNonEmpty(in.Slug, name), s.brands.SlugExists)
	if err != nil {
		return nil, err
	}
	b := &domain.Brand{
		Name:    name,
		Slug:    slug,
		Logo:    strings.TrimSpace(in.Logo),
		Website: strings.TrimSpace(in.Website),
		Active:  boolOr(in.Active, true), // Active unless stated
	}
	if err := s.brands.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
