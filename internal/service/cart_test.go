package service

import (
	"context"
	"storefront/internal/domain"
	"storefront/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartFixture(t *testing.T) (*services, domain.User, domain.Product) {
	s := newServices(t)
	category := testutil.CreateCategory(t, s.db, "Phones", "phones")
	product := testutil.CreateProduct(t, s.db, domain.Product{Title: "Pixel", Price: 20, DiscountPercentage: 10, Stock: 5, CategoryID: category.ID})
	user := testutil.CreateUser(t, s.db, "buyer@example.com", domain.RoleUser)
	return s, user, product
}

func TestCartAddTwiceIncrementsQuantity(t *testing.T) {
	s, user, product := cartFixture(t)
	ctx := context.Background()

	_, err := s.carts.Add(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)
	cart, err := s.carts.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, 54.0, cart.Subtotal)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, 18.0, cart.Items[0].Product.FinalPrice)
}

func TestCartAddChecksStock(t *testing.T) {
	s, user, product := cartFixture(t)
	ctx := context.Background()

	_, err := s.carts.Add(ctx, user.ID, product.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = s.carts.Add(ctx, user.ID, product.ID, 4)
	require.NoError(t, err)
	_, err = s.carts.Add(ctx, user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := s.carts.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.ItemCount)
}

func TestCartAddRejectsBadInput(t *testing.T) {
	s, user, _ := cartFixture(t)
	ctx := context.Background()

	_, err := s.carts.Add(ctx, user.ID, 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.carts.Add(ctx, user.ID, 999, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartRemoveLastUnitDeletesRow(t *testing.T) {
	s, user, product := cartFixture(t)
	ctx := context.Background()

	_, err := s.carts.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	cart, err := s.carts.Remove(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = s.carts.Remove(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)

	var rows int64
	require.NoError(t, s.db.Model(&domain.CartItem{}).Count(&rows).Error)
	assert.Zero(t, rows)

	_, err = s.carts.Remove(ctx, user.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartSetQuantity(t *testing.T) {
	s, user, product := cartFixture(t)
	ctx := context.Background()

	_, err := s.carts.SetQuantity(ctx, user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.carts.Add(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err := s.carts.SetQuantity(ctx, user.ID, product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.ItemCount)

	_, err = s.carts.SetQuantity(ctx, user.ID, product.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	cart, err = s.carts.SetQuantity(ctx, user.ID, product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartClear(t *testing.T) {
	s, user, product := cartFixture(t)
	ctx := context.Background()

	_, err := s.carts.Add(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	cart, err := s.carts.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
}
