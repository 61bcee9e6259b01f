package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WishlistItem 收藏夹行，(user_id, product_id) 唯一
type WishlistItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistItemView 收藏项与商品信息
type WishlistItemView struct {
	ID           int             `json:"id"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price"`
	Size         Size            `json:"size"`
	PetType      PetType         `json:"pet_type"`
	Color        string          `json:"color"`
	AddedAt      time.Time       `json:"added_at"`
}

// NewWishlistItemView 合并收藏项和商品
func NewWishlistItemView(item *WishlistItem, product *Product) *WishlistItemView {
	return &WishlistItemView{
		ID:           item.ID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		Price:        product.Price,
		Size:         product.Size,
		PetType:      product.PetType,
		Color:        product.Color,
		AddedAt:      item.CreatedAt,
	}
}
