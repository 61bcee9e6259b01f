package interfaces

import (
	"context"
	"petshop-backend/internal/model"
)

// CartRepository 购物车
type CartRepository interface {
	FindByUserID(ctx context.Context, userID int) ([]*model.CartItem, error)
	FindByID(ctx context.Context, id int) (*model.CartItem, error)
	FindByUserProductSize(ctx context.Context, userID, productID int, size string) (*model.CartItem, error)
	// LockByUserID 和 LockByUserProductSize 在事务中加行锁读取最新提交的数据
	LockByUserID(ctx context.Context, userID int) ([]*model.CartItem, error)
	LockByUserProductSize(ctx context.Context, userID, productID int, size string) (*model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, id, quantity int) error
	Delete(ctx context.Context, id int) error
	DeleteByUserID(ctx context.Context, userID int) error
}

// WishlistRepository 收藏夹
type WishlistRepository interface {
	FindByUserID(ctx context.Context, userID int) ([]*model.WishlistItem, error)
	Exists(ctx context.Context, userID, productID int) (bool, error)
	Create(ctx context.Context, item *model.WishlistItem) error
	Delete(ctx context.Context, userID, productID int) (bool, error)
	DeleteByUserID(ctx context.Context, userID int) error
}
