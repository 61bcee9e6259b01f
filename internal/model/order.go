package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order 订单模型，明细是下单时的商品快照
type Order struct {
	ID                  int             `json:"id"`
	UserID              int             `json:"user_id"`
	OrderNumber         string          `json:"order_number"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	Status              OrderStatus     `json:"status"`
	PaymentCardLastFour string          `json:"payment_card_last_four"`
	Items               []*OrderItem    `json:"items"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// OrderItem 订单明细
type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"order_id"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	SelectedSize string          `json:"selected_size"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	PaymentCardID int `json:"payment_card_id" binding:"required,min=1"`
}
