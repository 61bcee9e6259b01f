package interfaces

import (
	"context"
	"petshop-backend/internal/model"
)

// PaymentCardRepository 支付卡，列表按 id 升序
type PaymentCardRepository interface {
	FindByUserID(ctx context.Context, userID int) ([]*model.PaymentCard, error)
	// LockByUserID 在事务中锁定用户的全部卡片行
	LockByUserID(ctx context.Context, userID int) ([]*model.PaymentCard, error)
	FindByID(ctx context.Context, id int) (*model.PaymentCard, error)
	Create(ctx context.Context, card *model.PaymentCard) error
	Delete(ctx context.Context, id int) error
	ClearDefault(ctx context.Context, userID int) error
	SetDefault(ctx context.Context, id int) error
}

// OrderRepository 订单及明细
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int) (*model.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Order, error)
	Count(ctx context.Context) (int, error)
}
