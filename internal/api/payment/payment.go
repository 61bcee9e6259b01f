package payment

import (
	"petshop-backend/internal/api"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"petshop-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler 支付卡和订单接口
type PaymentHandler struct {
	cardService  service.PaymentCardServiceInterface
	orderService service.OrderServiceInterface
}

func NewPaymentHandler(cardService service.PaymentCardServiceInterface, orderService service.OrderServiceInterface) *PaymentHandler {
	return &PaymentHandler{cardService: cardService, orderService: orderService}
}

func (h *PaymentHandler) GetCards(c *gin.Context) {
	cards, err := h.cardService.GetCards(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, cards, "")
}

func (h *PaymentHandler) AddCard(c *gin.Context) {
	var req model.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	card, err := h.cardService.AddCard(c.Request.Context(), api.UserID(c), &req)
	if err != nil {
		// 不记录卡号
		util.Logger.Info("添加支付卡失败", zap.Int("user_id", api.UserID(c)), zap.Int("error_code", int(errors.CodeOf(err))))
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, card, "Card added")
}

func (h *PaymentHandler) DeleteCard(c *gin.Context) {
	cardID, err := api.ParamID(c, "cardId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.cardService.DeleteCard(c.Request.Context(), api.UserID(c), cardID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}

func (h *PaymentHandler) SetDefaultCard(c *gin.Context) {
	cardID, err := api.ParamID(c, "cardId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	card, err := h.cardService.SetDefaultCard(c.Request.Context(), api.UserID(c), cardID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, card, "Default card updated")
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), api.UserID(c), req.PaymentCardID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, order, "Order created")
}

func (h *PaymentHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.GetUserOrders(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, orders, "")
}

func (h *PaymentHandler) GetOrder(c *gin.Context) {
	orderID, err := api.ParamID(c, "orderId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	order, err := h.orderService.GetOrderByID(c.Request.Context(), api.UserID(c), orderID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, order, "")
}
