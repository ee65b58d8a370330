package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryAndBrand(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	first, err := s.catalog.CreateCategory(ctx, CategoryInput{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-and-garden", first.Slug)
	assert.True(t, first.Active)

	inactive := false
	second, err := s.catalog.CreateCategory(ctx, CategoryInput{Name: "Home and Garden", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "home-and-garden-2", second.Slug)
	assert.False(t, second.Active)

	active, err := s.catalog.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	all, err := s.catalog.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	brand, err := s.catalog.CreateBrand(ctx, BrandInput{Name: "Acme", Slug: "ACME Corp", Website: " https://acme.example.com "})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", brand.Slug)
	assert.Equal(t, "https://acme.example.com", brand.Website)

	_, err = s.catalog.CreateBrand(ctx, BrandInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUniqueSlugRejectsEmptyBase(t *testing.T) {
	_, err := uniqueSlug(context.Background(), "!!!", func(context.Context, string) (bool, error) { return false, nil })
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUniqueSlugTrimsLongNames(t *testing.T) {
	taken := map[string]bool{}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }
	name := strings.Repeat("x", 185) + "-" + strings.Repeat("y", 60)

	first, err := uniqueSlug(context.Background(), name, exists)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 185), first) // Cut at the separator, dash trimmed
	taken[first] = true

	second, err := uniqueSlug(context.Background(), name, exists)
	require.NoError(t, err)
	assert.Equal(t, first+"-2", second)
	assert.LessOrEqual(t, len(second), maxSlugLength)
}
