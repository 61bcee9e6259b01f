package interfaces

import (
	"context"
	"petshop-backend/internal/model"
)

// UserRepository 接口定义了用户仓库应该实现的方法，找不到时返回 nil, nil
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int, error)
}
