package utils

import (
	"storefront/internal/domain" // Domain models
	"time"                       // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims is the session carried by the signed token
type Claims struct {
	UserID    uint   `json:"user_id"`    // User ID
	Email     string `json:"email"`      // Account email
	Role      string `json:"role"`       // Role name
	RoleLevel int    `json:"role_level"` // Role level at issue time
	FirstName string `json:"first_name"` // Profile first name
	LastName  string `json:"last_name"`  // Profile last name
	jwt.RegisteredClaims
}

// GenerateJWT creates a session token for the user, which must have Role loaded
func GenerateJWT(user *domain.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role.Name,
		RoleLevel: user.Role.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),     // Issued at current time
		},
	}
	if user.Profile != nil {
		claims.FirstName = user.Profile.FirstName
		claims.LastName = user.Profile.LastName
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(secret))          // Sign the token with the secret
	return signed, expires, err
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
