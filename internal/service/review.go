package service

import (
	"context"                        // Context for cancellation
	"storefront/internal/domain"     // Domain models
	"storefront/internal/repository" // Data access
	"strings"                        // String manipulation
)

// ReviewInput rates a product
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// ReviewList is a product's reviews with their mean rating
type ReviewList struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	Total         int             `json:"total"`
}

// ReviewService reads and writes product reviews
type ReviewService struct {
	products *ProductService
	reviews  *repository.ReviewRepository
}

// NewReviewService creates a ReviewService
func NewReviewService(products *ProductService, reviews *repository.ReviewRepository) *ReviewService {
	return &ReviewService{products: products, reviews: reviews}
}

// List returns the reviews of the product identified by key
func (s *ReviewService) List(ctx context.Context, key string) (*ReviewList, error) {
	p, err := s.products.Find(ctx, key) // Numeric id or slug
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewList{Reviews: reviews, AverageRating: domain.AverageRating(reviews), Total: len(reviews)}, nil
}

// Submit stores the user's review, replacing one they wrote earlier
func (s *ReviewService) Submit(ctx context.Context, userID uint, key string, in ReviewInput) (*domain.Review, error) {
	p, err := s.products.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		UserID:    userID,
		ProductID: p.ID,
	}
	if err := s.reviews.Upsert(ctx, review); err != nil { // One review per user and product
		return nil, err
	}
	return review, nil
}
