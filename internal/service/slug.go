package service

import (
	"context" // Context for lookups
	"fmt"     // Error wrapping
	"strconv" // Suffix formatting
	"strings" // Trimming

	"github.com/gosimple/slug" // URL-safe slugs
)

const (
	maxSlugAttempts = 1000 // Numeric suffixes tried before giving up
	maxSlugLength   = 191  // Column size of every slug
)

// uniqueSlug slugifies base and appends -2, -3, ... until exists reports it free
func uniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	root := slug.Make(base)
	// Leave room for the longest suffix so every candidate fits the column
	if limit := maxSlugLength - len("-"+strconv.Itoa(maxSlugAttempts)); len(root) > limit {
		root = strings.TrimRight(root[:limit], "-")
	}
	if root == "" {
		return "", fmt.Errorf("%w: cannot derive a slug from %q", ErrInvalidInput, base)
	}
	candidate := root
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = root + "-" + strconv.Itoa(i) // Try the next suffix
	}
	return "", fmt.Errorf("%w: slug %q exhausted", ErrConflict, root)
}
