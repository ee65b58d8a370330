// Package service holds the storefront's business rules between the HTTP
// handlers and the repositories.
package service

import (
	"errors"                         // Error inspection
	"storefront/internal/repository" // Data access
)

// Errors returned by services; handlers map them onto HTTP statuses
var (
	ErrNotFound          = repository.ErrNotFound
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("invalid credentials")
)
