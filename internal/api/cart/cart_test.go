package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID int) ([]*model.CartItemView, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.CartItemView), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, userID int, req *model.AddToCartRequest) (*model.CartItemView, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItemView), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID, cartID, quantity int) (*model.CartItemView, error) {
	args := m.Called(userID, cartID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItemView), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, userID, cartID int) error {
	return m.Called(userID, cartID).Error(0)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID int) error {
	return m.Called(userID).Error(0)
}

func (m *MockCartService) GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	args := m.Called(userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ service.CartServiceInterface = (*MockCartService)(nil)

type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) GetWishlist(ctx context.Context, userID int) ([]*model.WishlistItemView, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.WishlistItemView), args.Error(1)
}

func (m *MockWishlistService) AddToWishlist(ctx context.Context, userID, productID int) (*model.WishlistItemView, error) {
	args := m.Called(userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WishlistItemView), args.Error(1)
}

func (m *MockWishlistService) RemoveFromWishlist(ctx context.Context, userID, productID int) error {
	return m.Called(userID, productID).Error(0)
}

func (m *MockWishlistService) IsInWishlist(ctx context.Context, userID, productID int) (bool, error) {
	args := m.Called(userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistService) ClearWishlist(ctx context.Context, userID int) error {
	return m.Called(userID).Error(0)
}

var _ service.WishlistServiceInterface = (*MockWishlistService)(nil)

func newRouter(cartSvc *MockCartService, wishSvc *MockWishlistService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCartHandler(cartSvc, wishSvc)
	r := gin.New()
	g := r.Group("/", func(c *gin.Context) { c.Set("user_id", 3) })
	g.PUT("/cart/items/:cartId", h.UpdateQuantity)
	g.DELETE("/cart/items/:cartId", h.RemoveFromCart)
	g.GET("/cart/total", h.GetCartTotal)
	g.POST("/wishlist/add/:productId", h.AddToWishlist)
	g.DELETE("/wishlist/remove/:productId", h.RemoveFromWishlist)
	return r
}

func send(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateQuantity(t *testing.T) {
	cartSvc := new(MockCartService)
	r := newRouter(cartSvc, new(MockWishlistService))

	cartSvc.On("UpdateQuantity", 3, 5, 2).Return(&model.CartItemView{ID: 5, Quantity: 2}, nil)
	cartSvc.On("UpdateQuantity", 3, 5, 0).Return(nil, nil)
	cartSvc.On("UpdateQuantity", 3, 6, 1).Return(nil, errors.Forbidden("You are not allowed to access this cart item"))

	assert.Equal(t, http.StatusOK, send(r, http.MethodPut, "/cart/items/5?quantity=2").Code)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodPut, "/cart/items/5?quantity=0").Code)
	assert.Equal(t, http.StatusForbidden, send(r, http.MethodPut, "/cart/items/6?quantity=1").Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPut, "/cart/items/5?quantity=x").Code)
	cartSvc.AssertExpectations(t)
}

func TestCartTotalAndRemove(t *testing.T) {
	cartSvc := new(MockCartService)
	r := newRouter(cartSvc, new(MockWishlistService))

	cartSvc.On("GetCartTotal", 3).Return(decimal.RequireFromString("12.50"), nil)
	cartSvc.On("RemoveFromCart", 3, 8).Return(errors.NotFound("Cart item not found"))

	w := send(r, http.MethodGet, "/cart/total")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"12.5"`)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, "/cart/items/8").Code)
}

func TestWishlistStatusCodes(t *testing.T) {
	wishSvc := new(MockWishlistService)
	r := newRouter(new(MockCartService), wishSvc)

	wishSvc.On("AddToWishlist", 3, 1).Return(&model.WishlistItemView{ProductID: 1}, nil).Once()
	wishSvc.On("AddToWishlist", 3, 1).Return(nil, errors.New(errors.ErrResourceExists, "Product already in wishlist")).Once()
	wishSvc.On("RemoveFromWishlist", 3, 1).Return(nil)

	assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/wishlist/add/1").Code)
	assert.Equal(t, http.StatusConflict, send(r, http.MethodPost, "/wishlist/add/1").Code)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/wishlist/remove/1").Code)
	wishSvc.AssertExpectations(t)
}
