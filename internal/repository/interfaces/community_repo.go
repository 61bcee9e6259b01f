package interfaces

import (
	"context"
	"petshop-backend/internal/model"
)

// CommentRepository 商品评论
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id int) (*model.Comment, error)
	FindByProductID(ctx context.Context, productID int) ([]*model.Comment, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Comment, error)
	FindAll(ctx context.Context) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id int) error
}

// FeedbackRepository 用户反馈
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindByID(ctx context.Context, id int) (*model.Feedback, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Feedback, error)
	FindAll(ctx context.Context) ([]*model.Feedback, error)
	Update(ctx context.Context, feedback *model.Feedback) error
	Delete(ctx context.Context, id int) error
}

// PetRepository 宠物档案
type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	FindByID(ctx context.Context, id int) (*model.Pet, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	Delete(ctx context.Context, id int) error
}
