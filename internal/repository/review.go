package repository

import (
	"context"                    // Context for cancellation
	"errors"                     // Error inspection
	"storefront/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// ReviewRepository stores product reviews
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a ReviewRepository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListByProduct returns a product's reviews newest first, with author names filled in
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := r.db.WithContext(ctx).
		Preload("User.Profile"). // Author display names
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].Author = authorName(reviews[i].User) // Never expose the user record
	}
	return reviews, nil
}

// Upsert stores the user's review of a product, replacing an earlier one
func (r *ReviewRepository) Upsert(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Review
		err := tx.Where("user_id = ? AND product_id = ?", review.UserID, review.ProductID).First(&existing).Error
		switch {
		case err == nil:
			review.ID = existing.ID               // Replace the earlier review
			review.CreatedAt = existing.CreatedAt // Keep the original timestamp
			return tx.Omit("User").Save(review).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Omit("User").Create(review).Error
		default:
			return err
		}
	})
}

// Count returns the number of reviews
func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Count(&n).Error
	return n, err
}

func authorName(u *domain.User) string {
	if u == nil {
		return "Anonymous"
	}
	if name := u.Profile.DisplayName(); name != "" {
		return name
	}
	return "Customer"
}
