package service

import (
	"context"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductMakesSlugUnique(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")

	in := ProductInput{Title: "Pixel Phone", Price: float(499), CategoryID: category.ID}
	first, err := s.products.Create(ctx, in)
	require.NoError(t, err)
	second, err := s.products.Create(ctx, in)
	require.NoError(t, err)
	third, err := s.products.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "pixel-phone", first.Slug)
	assert.Equal(t, "pixel-phone-2", second.Slug)
	assert.Equal(t, "pixel-phone-3", third.Slug)
	require.NotNil(t, first.Category)
	assert.Equal(t, "phones", first.Category.Slug)
}

func TestCreateProductValidatesReferences(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")
	missing := uint(42)

	_, err := s.products.Create(ctx, ProductInput{Title: "Orphan", Price: float(1), CategoryID: 999})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.products.Create(ctx, ProductInput{Title: "Orphan", Price: float(1), CategoryID: category.ID, BrandID: &missing})
	assert.ErrorIs(t, err, ErrInvalidInput)

	zero := uint(0)
	p, err := s.products.Create(ctx, ProductInput{
		Title:      "Unbranded",
		Price:      float(1),
		CategoryID: category.ID,
		BrandID:    &zero,
		Images:     []string{" ", "https://img.example.com/a.png"},
	})
	require.NoError(t, err)
	assert.Nil(t, p.BrandID)
	assert.Equal(t, []string{"https://img.example.com/a.png"}, p.Images)
	assert.Equal(t, "https://img.example.com/a.png", p.Thumbnail)
}

func TestUpdateProduct(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")
	brand := testutil.CreateBrand(t, s.db, "Acme", "acme")
	testutil.CreateProduct(t, s.db, domain.Product{Title: "Taken", Slug: "renamed", CategoryID: category.ID})

	p, err := s.products.Create(ctx, ProductInput{Title: "Original", Price: float(10), CategoryID: category.ID, BrandID: &brand.ID})
	require.NoError(t, err)

	title := "Renamed"
	stock := 7
	zero := uint(0)
	updated, err := s.products.Update(ctx, "original", ProductUpdate{Title: &title, Stock: &stock, BrandID: &zero})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "renamed-2", updated.Slug)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, 10.0, updated.Price)
	assert.Nil(t, updated.BrandID)

	// Keeping the same title keeps the slug
	again, err := s.products.Update(ctx, idKey(p.ID), ProductUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed-2", again.Slug)

	_, err = s.products.Update(ctx, "999", ProductUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")
	for _, title := range []string{"A", "B", "C"} {
		testutil.CreateProduct(t, s.db, domain.Product{Title: title, Price: 100, DiscountPercentage: 25, CategoryID: category.ID})
	}
	user := testutil.CreateUser(t, s.db, "r@example.com", domain.RoleUser)
	_, err := s.reviews.Submit(ctx, user.ID, "a", ReviewInput{Rating: 4})
	require.NoError(t, err)

	page, err := s.products.List(ctx, repository.ProductFilter{Sort: "title-asc", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "A", page.Products[0].Title)
	assert.Equal(t, 4.0, page.Products[0].AverageRating)
	assert.Equal(t, 1, page.Products[0].ReviewCount)
	assert.Equal(t, 75.0, page.Products[0].FinalPrice)

	_, err = s.products.List(ctx, repository.ProductFilter{MinPrice: float(50), MaxPrice: float(10), Page: 1, Limit: 12})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProductByIDOrSlug(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")
	p := testutil.CreateProduct(t, s.db, domain.Product{Title: "Pixel", Price: 10, CategoryID: category.ID})
	for i, rating := range []int{5, 3} {
		u := testutil.CreateUser(t, s.db, string(rune('a'+i))+"@example.com", domain.RoleUser)
		_, err := s.reviews.Submit(ctx, u.ID, "pixel", ReviewInput{Rating: rating})
		require.NoError(t, err)
	}

	bySlug, err := s.products.Get(ctx, "pixel")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)
	assert.Len(t, bySlug.Reviews, 2)
	assert.Equal(t, 4.0, bySlug.AverageRating)

	byID, err := s.products.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID.ID)

	_, err = s.products.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := s.products.Delete(ctx, "pixel")
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)
	_, err = s.products.Delete(ctx, idKey(p.ID))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductCapsSlugLength(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")
	title := strings.Repeat("a", 120) + " " + strings.Repeat("b", 134)

	in := ProductInput{Title: title, Price: float(1), CategoryID: category.ID}
	first, err := s.products.Create(ctx, in)
	require.NoError(t, err)
	second, err := s.products.Create(ctx, in)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(first.Slug), maxSlugLength)
	assert.LessOrEqual(t, len(second.Slug), maxSlugLength)
	assert.Equal(t, first.Slug+"-2", second.Slug)
	assert.False(t, strings.HasSuffix(first.Slug, "-"))
}
