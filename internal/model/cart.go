package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem 购物车行，(user_id, product_id, selected_size) 唯一
type CartItem struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	ProductID    int       `json:"product_id"`
	Quantity     int       `json:"quantity"`
	SelectedSize string    `json:"selected_size"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartItemView 购物车行与商品信息合并后的展示结构
type CartItemView struct {
	ID           int             `json:"id"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	SelectedSize string          `json:"selected_size"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// NewCartItemView 根据购物车行和商品计算展示字段
func NewCartItemView(item *CartItem, product *Product) *CartItemView {
	return &CartItemView{
		ID:           item.ID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		Price:        product.Price,
		Quantity:     item.Quantity,
		SelectedSize: item.SelectedSize,
		TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	ProductID    int    `json:"product_id" binding:"required,min=1"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	SelectedSize string `json:"selected_size" binding:"max=20"`
}
