package repository

import (
	"context"                    // Context for cancellation
	"storefront/internal/domain" // Domain models
	"strings"                    // String manipulation

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository stores users, their roles and profiles
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user together with its profile
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Omit("Role").Create(u).Error // Roles are seeded, never created here
}

// EmailExists reports whether an account uses email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", strings.ToLower(email)).Count(&n).Error
	return n > 0, err
}

// FindByEmail loads a user with role and profile
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User // User record
	err := r.db.WithContext(ctx).Preload("Role").Preload("Profile").
		Where("email = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByID loads a user with role and profile
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("Role").Preload("Profile").First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// List returns one page of users ordered by id
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	db := r.db.WithContext(ctx)
	var total int64 // All users
	if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := []domain.User{}
	err := db.Preload("Role").Preload("Profile").Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error // Stable order for paging
	return users, total, err
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error
	return n, err
}

// RoleByName loads a role
func (r *UserRepository) RoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role // Role record
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

// SetRole points a user at another role
func (r *UserRepository) SetRole(ctx context.Context, userID, roleID uint) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Update("role_id", roleID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 { // No such user
		return ErrNotFound
	}
	return nil
}

// SaveProfile creates or updates the user's profile
func (r *UserRepository) SaveProfile(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error // Insert or update by primary key
}
