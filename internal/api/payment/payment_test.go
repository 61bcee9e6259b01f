package payment

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) GetCards(ctx context.Context, userID int) ([]*model.PaymentCard, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.PaymentCard), args.Error(1)
}

func (m *MockCardService) AddCard(ctx context.Context, userID int, req *model.AddCardRequest) (*model.PaymentCard, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentCard), args.Error(1)
}

func (m *MockCardService) DeleteCard(ctx context.Context, userID, cardID int) error {
	return m.Called(userID, cardID).Error(0)
}

func (m *MockCardService) SetDefaultCard(ctx context.Context, userID, cardID int) (*model.PaymentCard, error) {
	args := m.Called(userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentCard), args.Error(1)
}

var _ service.PaymentCardServiceInterface = (*MockCardService)(nil)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID, paymentCardID int) (*model.Order, error) {
	args := m.Called(userID, paymentCardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetUserOrders(ctx context.Context, userID int) ([]*model.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, userID, orderID int) (*model.Order, error) {
	args := m.Called(userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

var _ service.OrderServiceInterface = (*MockOrderService)(nil)

func newRouter(cards *MockCardService, orders *MockOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(cards, orders)
	r := gin.New()
	g := r.Group("/", func(c *gin.Context) { c.Set("user_id", 4) })
	g.POST("/payment-cards", h.AddCard)
	g.DELETE("/payment-cards/:cardId", h.DeleteCard)
	g.PUT("/payment-cards/:cardId/default", h.SetDefaultCard)
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders/:orderId", h.GetOrder)
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCard(t *testing.T) {
	cards := new(MockCardService)
	r := newRouter(cards, new(MockOrderService))

	cards.On("AddCard", 4, mock.MatchedBy(func(req *model.AddCardRequest) bool {
		return req.CardNumber == "4532015112830366"
	})).Return(&model.PaymentCard{ID: 1, MaskedNumber: "****0366", IsDefault: true}, nil)
	cards.On("AddCard", 4, mock.MatchedBy(func(req *model.AddCardRequest) bool {
		return req.CardNumber == "4532015112830367"
	})).Return(nil, errors.New(errors.ErrInvalidCard, "Invalid card number"))

	body := `{"card_number":"4532015112830366","cardholder_name":"Ann","expiry_month":12,"expiry_year":2030,"cvv":"123"}`
	w := send(r, http.MethodPost, "/payment-cards", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "****0366")
	assert.NotContains(t, w.Body.String(), "4532015112830366")

	body = `{"card_number":"4532015112830367","cardholder_name":"Ann","expiry_month":12,"expiry_year":2030,"cvv":"123"}`
	w = send(r, http.MethodPost, "/payment-cards", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid card number")
}

func TestCardOwnershipErrors(t *testing.T) {
	cards := new(MockCardService)
	r := newRouter(cards, new(MockOrderService))

	cards.On("DeleteCard", 4, 9).Return(errors.Forbidden("Unauthorized to access this card"))
	cards.On("DeleteCard", 4, 10).Return(nil)
	cards.On("SetDefaultCard", 4, 11).Return(nil, errors.NotFound("Card not found"))

	assert.Equal(t, http.StatusForbidden, send(r, http.MethodDelete, "/payment-cards/9", "").Code)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/payment-cards/10", "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodPut, "/payment-cards/11/default", "").Code)
}

func TestCreateOrder(t *testing.T) {
	orders := new(MockOrderService)
	r := newRouter(new(MockCardService), orders)

	orders.On("CreateOrder", 4, 1).Return(&model.Order{ID: 1, OrderNumber: "ORD-20240101-ABCDEF12"}, nil).Once()
	orders.On("CreateOrder", 4, 1).Return(nil, errors.New(errors.ErrEmptyCart, "Cart is empty")).Once()

	w := send(r, http.MethodPost, "/orders", `{"payment_card_id":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ORD-20240101-ABCDEF12")

	w = send(r, http.MethodPost, "/orders", `{"payment_card_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")

	w = send(r, http.MethodPost, "/orders", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	orders.AssertExpectations(t)
}

func TestGetOrderForbidden(t *testing.T) {
	orders := new(MockOrderService)
	r := newRouter(new(MockCardService), orders)
	orders.On("GetOrderByID", 4, 2).Return(nil, errors.Forbidden("Unauthorized to access this order"))

	assert.Equal(t, http.StatusForbidden, send(r, http.MethodGet, "/orders/2", "").Code)
}
