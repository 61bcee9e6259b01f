package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []*model.Product {
	return []*model.Product{
		{Name: "Dog Hoodie", Size: model.SizeM, PetType: model.PetTypeDog, Price: decimal.RequireFromString("19.99"), Color: "Red", Image: "hoodie.png"},
		{Name: "Cat Collar", Size: model.SizeS, PetType: model.PetTypeCat, Price: decimal.RequireFromString("5.50"), Color: "Blue", Image: "collar.png"},
		{Name: "Dog Boots", Size: model.SizeL, PetType: model.PetTypeDog, Price: decimal.RequireFromString("30"), Color: "Black", Image: "boots.png"},
	}
}

func newCartFixture() (*CartService, *memCart, *memProducts) {
	products := newMemProducts(sampleProducts()...)
	cart := newMemCart()
	return NewCartService(&fakeTx{}, cart, products), cart, products
}

func TestAddToCartMergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newCartFixture()

	_, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 2, SelectedSize: "M"})
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 3, SelectedSize: "M"})
	require.NoError(t, err)

	rows, _ := cart.FindByUserID(ctx, 1)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
	assert.Equal(t, 5, view.Quantity)
	assert.True(t, decimal.RequireFromString("99.95").Equal(view.TotalPrice))
}

func TestAddToCartDifferentSizesAreSeparateRows(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newCartFixture()

	_, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1, SelectedSize: "M"})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1, SelectedSize: "L"})
	require.NoError(t, err)
	// 未指定尺码时使用商品自身尺码
	_, err = svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	rows, _ := cart.FindByUserID(ctx, 1)
	assert.Len(t, rows, 2)
}

func TestAddToCartProductMissing(t *testing.T) {
	svc, _, _ := newCartFixture()
	_, err := svc.AddToCart(context.Background(), 1, &model.AddToCartRequest{ProductID: 99, Quantity: 1})
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newCartFixture()

	view, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, 2, view.ID, 4)
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))

	_, err = svc.UpdateQuantity(ctx, 1, 404, 4)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))

	updated, err := svc.UpdateQuantity(ctx, 1, view.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.True(t, decimal.RequireFromString("22").Equal(updated.TotalPrice))

	removed, err := svc.UpdateQuantity(ctx, 1, view.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, removed)
	rows, _ := cart.FindByUserID(ctx, 1)
	assert.Empty(t, rows)
}

func TestRemoveFromCartChecksOwnership(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newCartFixture()

	view, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	err = svc.RemoveFromCart(ctx, 2, view.ID)
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))

	require.NoError(t, svc.RemoveFromCart(ctx, 1, view.ID))
	item, _ := cart.FindByID(ctx, view.ID)
	assert.Nil(t, item)
}

func TestCartTotalAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture()

	total, err := svc.GetCartTotal(ctx, 1)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 3, Quantity: 1})
	require.NoError(t, err)

	total, err = svc.GetCartTotal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "69.98", total.StringFixed(2))

	require.NoError(t, svc.ClearCart(ctx, 1))
	require.NoError(t, svc.ClearCart(ctx, 1))
	items, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	products := newMemProducts(sampleProducts()...)
	svc := NewWishlistService(&memWishlist{}, products)

	view, err := svc.AddToWishlist(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cat Collar", view.ProductName)

	_, err = svc.AddToWishlist(ctx, 1, 2)
	assert.True(t, errors.HasCode(err, errors.ErrResourceExists))

	_, err = svc.AddToWishlist(ctx, 1, 42)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))

	in, err := svc.IsInWishlist(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, svc.RemoveFromWishlist(ctx, 1, 2))
	err = svc.RemoveFromWishlist(ctx, 1, 2)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))

	_, err = svc.AddToWishlist(ctx, 1, 1)
	require.NoError(t, err)
	require.NoError(t, svc.ClearWishlist(ctx, 1))
	list, err := svc.GetWishlist(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddToCartMergesConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newCartFixture()
	// 两个请求的普通读都没看到对方插入的行
	cart.staleReads = true

	_, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 2, SelectedSize: "M"})
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 3, SelectedSize: "M"})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Quantity)

	rows, _ := cart.FindByUserID(ctx, 1)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
}

func TestAddToWishlistConcurrentDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	wishlist := &memWishlist{staleExists: true}
	svc := NewWishlistService(wishlist, newMemProducts(sampleProducts()...))

	_, err := svc.AddToWishlist(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.AddToWishlist(ctx, 1, 2)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrResourceExists))
	assert.Equal(t, "Product already in wishlist", err.(*errors.AppError).Message)
	assert.Len(t, wishlist.rows, 1)
}
