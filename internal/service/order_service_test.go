package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc      *OrderService
	cartSvc  *CartService
	cart     *memCart
	products *memProducts
	cards    *memCards
	orders   *memOrders
	notifier *recordingNotifier
	tx       *fakeTx
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		cart:     newMemCart(),
		products: newMemProducts(sampleProducts()...),
		cards:    newMemCards(),
		orders:   &memOrders{},
		notifier: &recordingNotifier{},
		tx:       &fakeTx{},
	}
	users := new(MockUserRepository)
	users.On("FindByID", context.Background(), 1).Return(&model.User{ID: 1, Email: "a@b.com"}, nil)

	f.svc = NewOrderService(f.tx, f.orders, f.cart, f.products, f.cards, users, f.notifier)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }
	f.cartSvc = NewCartService(f.tx, f.cart, f.products)

	require.NoError(t, f.cards.Create(context.Background(), &model.PaymentCard{UserID: 1, LastFourDigits: "0366", IsDefault: true}))
	require.NoError(t, f.cards.Create(context.Background(), &model.PaymentCard{UserID: 2, LastFourDigits: "1111", IsDefault: true}))
	return f
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), 1, 1)
	assert.True(t, errors.HasCode(err, errors.ErrEmptyCart))
	assert.Empty(t, f.orders.rows)
}

func TestCreateOrderSnapshotsAndClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	_, err := f.cartSvc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 2, SelectedSize: "M"})
	require.NoError(t, err)
	_, err = f.cartSvc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 2, Quantity: 3})
	require.NoError(t, err)

	order, err := f.svc.CreateOrder(ctx, 1, 1)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-20240309-[0-9A-F]{8}$`), order.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "0366", order.PaymentCardLastFour)
	require.Len(t, order.Items, 2)
	// 19.99*2 + 5.50*3
	assert.Equal(t, "56.48", order.TotalAmount.StringFixed(2))

	sum := decimal.Zero
	for _, it := range order.Items {
		assert.True(t, it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Equal(it.Subtotal))
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, sum.Equal(order.TotalAmount))

	rows, _ := f.cart.FindByUserID(ctx, 1)
	assert.Empty(t, rows)
	assert.Eventually(t, func() bool {
		f.notifier.mu.Lock()
		defer f.notifier.mu.Unlock()
		return len(f.notifier.orders) == 1
	}, time.Second, 10*time.Millisecond)

	// 修改或删除商品不影响历史订单
	p, _ := f.products.FindByID(ctx, 1)
	p.Price = decimal.RequireFromString("999")
	p.Name = "Renamed"
	require.NoError(t, f.products.Update(ctx, p))
	_, err = f.products.Delete(ctx, 2)
	require.NoError(t, err)

	stored, err := f.svc.GetOrderByID(ctx, 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dog Hoodie", stored.Items[0].ProductName)
	assert.Equal(t, "19.99", stored.Items[0].Price.StringFixed(2))
	assert.Equal(t, "Cat Collar", stored.Items[1].ProductName)
}

func TestCreateOrderCardChecks(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	_, err := f.cartSvc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	_, err = f.svc.CreateOrder(ctx, 1, 99)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))

	_, err = f.svc.CreateOrder(ctx, 1, 2)
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))

	rows, _ := f.cart.FindByUserID(ctx, 1)
	assert.Len(t, rows, 1)
	assert.Empty(t, f.orders.rows)
}

func TestCreateOrderMissingProduct(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	_, err := f.cartSvc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 3, Quantity: 1})
	require.NoError(t, err)
	_, err = f.products.Delete(ctx, 3)
	require.NoError(t, err)

	_, err = f.svc.CreateOrder(ctx, 1, 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))
	assert.Contains(t, err.Error(), "Product not found: 3")
	assert.Empty(t, f.orders.rows)
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	for i := 0; i < 2; i++ {
		_, err := f.cartSvc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1})
		require.NoError(t, err)
		_, err = f.svc.CreateOrder(ctx, 1, 1)
		require.NoError(t, err)
	}

	orders, err := f.svc.GetUserOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Greater(t, orders[0].ID, orders[1].ID)

	_, err = f.svc.GetOrderByID(ctx, 2, orders[0].ID)
	assert.True(t, errors.HasCode(err, errors.ErrForbidden))
	_, err = f.svc.GetOrderByID(ctx, 1, 77)
	assert.True(t, errors.HasCode(err, errors.ErrResourceNotFound))
}

func TestGenerateOrderNumberIsUnique(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := generateOrderNumber(now)
		assert.False(t, seen[n])
		seen[n] = true
	}
}

func TestCreateOrderKeepsItemsAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	_, err := f.cartSvc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 1, Quantity: 1, SelectedSize: "M"})
	require.NoError(t, err)

	f.cart.afterLock = func() {
		require.NoError(t, f.cart.Create(ctx, &model.CartItem{UserID: 1, ProductID: 3, Quantity: 1, SelectedSize: "L"}))
	}

	order, err := f.svc.CreateOrder(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cart.locks)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Dog Hoodie", order.Items[0].ProductName)

	rows, _ := f.cart.FindByUserID(ctx, 1)
	require.Len(t, rows, 1, "row added after the lock stays in the cart")
	assert.Equal(t, 3, rows[0].ProductID)
}
