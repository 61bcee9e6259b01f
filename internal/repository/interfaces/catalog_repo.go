package interfaces

import (
	"context"
	"petshop-backend/internal/model"
)

// ProductRepository 商品目录
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int) (*model.Product, error)
	FindByFilter(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}
