package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size 商品尺码
type Size string

const (
	SizeXS Size = "XS"
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// PetType 商品适用的宠物类型
type PetType string

const (
	PetTypeDog PetType = "DOG"
	PetTypeCat PetType = "CAT"
)

// Product 商品模型
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Size        Size            `json:"size"`
	PetType     PetType         `json:"pet_type"`
	Price       decimal.Decimal `json:"price"`
	Color       string          `json:"color"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductInput 创建或更新商品的请求体
type ProductInput struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Size        Size            `json:"size" binding:"required,oneof=XS S M L XL"`
	PetType     PetType         `json:"pet_type" binding:"required,oneof=DOG CAT"`
	Price       decimal.Decimal `json:"price"`
	Color       string          `json:"color" binding:"required,max=50"`
	Image       string          `json:"image" binding:"max=1024"`
	Description string          `json:"description" binding:"max=2000"`
}

// ProductFilter 商品筛选条件，空字段不参与过滤
type ProductFilter struct {
	Sizes    []Size    `json:"sizes"`
	PetTypes []PetType `json:"pet_types"`
	Colors   []string  `json:"colors"`
	Search   string    `json:"search"`
}

// IsEmpty 是否没有任何筛选条件
func (f ProductFilter) IsEmpty() bool {
	return len(f.Sizes) == 0 && len(f.PetTypes) == 0 && len(f.Colors) == 0 && f.Search == ""
}
