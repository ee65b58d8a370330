package utils

import "strings"

// Error categories used to pick a user-facing message
const (
	ErrCategoryDatabase   = "database"
	ErrCategoryAuth       = "auth"
	ErrCategoryNetwork    = "network"
	ErrCategoryValidation = "validation"
	ErrCategoryUnknown    = "unknown"
)

var categoryHints = []struct {
	category string
	hints    []string
}{
	{ErrCategoryDatabase, []string{"database", "sql", "gorm", "record not found", "constraint", "duplicate", "deadlock", "no such table"}},
	{ErrCategoryAuth, []string{"unauthorized", "forbidden", "token", "credential", "password", "permission"}},
	{ErrCategoryNetwork, []string{"connection refused", "timeout", "network", "dial", "eof", "i/o", "redis"}},
	{ErrCategoryValidation, []string{"invalid", "required", "validation", "must be", "out of range"}},
}

// CategorizeError sorts an error by sniffing its message
func CategorizeError(err error) string {
	if err == nil {
		return ErrCategoryUnknown
	}
	msg := strings.ToLower(err.Error())
	for _, c := range categoryHints {
		for _, h := range c.hints {
			if strings.Contains(msg, h) {
				return c.category
			}
		}
	}
	return ErrCategoryUnknown
}

// UserMessage returns the message shown to a user for an error category
func UserMessage(category string) string {
	switch category {
	case ErrCategoryDatabase:
		return "We could not reach our catalog right now. Please try again shortly."
	case ErrCategoryAuth:
		return "Your session is not valid. Please sign in again."
	case ErrCategoryNetwork:
		return "A network problem occurred. Check your connection and retry."
	case ErrCategoryValidation:
		return "Some of the submitted information is invalid."
	default:
		return "Something went wrong. Please try again."
	}
}
