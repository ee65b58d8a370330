package service

import (
	"context"                        // Context for cancellation
	"errors"                         // Error inspection
	"fmt"                            // Error wrapping
	"storefront/internal/domain"     // Domain models
	"storefront/internal/repository" // Data access
	"storefront/internal/utils"      // Utility functions
	"strings"                        // String manipulation
	"time"                           // Time durations

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterInput creates an account
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email,max=191"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// ProfileInput updates the fields that are present
type ProfileInput struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=40"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
	City      *string `json:"city" binding:"omitempty,max=100"`
	Country   *string `json:"country" binding:"omitempty,max=100"`
	Company   *string `json:"company" binding:"omitempty,max=150"`
	JobTitle  *string `json:"jobTitle" binding:"omitempty,max=150"`
}

// maxPasswordBytes is bcrypt's input limit; the binding tag counts runes
const maxPasswordBytes = 72

// Session is returned on a successful login
type Session struct {
	Token   string       `json:"token"`
	Expires time.Time    `json:"expires"`
	User    *domain.User `json:"user"`
}

// AuthService checks credentials and issues session tokens
type AuthService struct {
	users  *repository.UserRepository
	secret string
	ttl    time.Duration
}

// NewAuthService creates an AuthService signing tokens with secret
func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// Register creates a user with the default role and an initial profile
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email)) // Emails are stored lower-cased
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict) // Duplicate email
	}
	role, err := s.users.RoleByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("load default role: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost) // Hash the password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:    email,
		Password: string(hash),
		RoleID:   role.ID,
		Profile: &domain.Profile{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = *role // Claims need the role loaded
	return user, nil
}

// Login verifies credentials and returns a signed session
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized // Same error for unknown email and wrong password
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	token, expires, err := utils.GenerateJWT(user, s.secret, s.ttl) // Sign the session token
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, Expires: expires, User: user}, nil
}

// User loads an account by id
func (s *AuthService) User(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies the present fields to the user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*domain.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := user.Profile
	if p == nil {
		p = &domain.Profile{UserID: user.ID} // Accounts without a profile get one
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&p.FirstName, in.FirstName)
	assign(&p.LastName, in.LastName)
	assign(&p.Phone, in.Phone)
	assign(&p.Address, in.Address)
	assign(&p.City, in.City)
	assign(&p.Country, in.Country)
	assign(&p.Company, in.Company)
	assign(&p.JobTitle, in.JobTitle)
	if err := s.users.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
