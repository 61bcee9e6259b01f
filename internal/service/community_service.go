package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"strings"
	"time"

	"go.uber.org/zap"
)

type CommentServiceInterface interface {
	Create(ctx context.Context, userID int, input *model.CommentInput) (*model.Comment, error)
	GetByID(ctx context.Context, id int) (*model.Comment, error)
	GetByProduct(ctx context.Context, productID int) ([]*model.Comment, error)
	GetByUser(ctx context.Context, userID int) ([]*model.Comment, error)
	GetAll(ctx context.Context) ([]*model.Comment, error)
	Update(ctx context.Context, userID, id int, text string) (*model.Comment, error)
	Delete(ctx context.Context, userID, id int) error
}

type FeedbackServiceInterface interface {
	Create(ctx context.Context, userID int, text string) (*model.Feedback, error)
	GetByID(ctx context.Context, id int) (*model.Feedback, error)
	GetByUser(ctx context.Context, userID int) ([]*model.Feedback, error)
	GetAll(ctx context.Context) ([]*model.Feedback, error)
	Update(ctx context.Context, userID, id int, text string) (*model.Feedback, error)
	Delete(ctx context.Context, userID, id int) error
}

// CommentService 读取不限制归属，修改和删除只允许作者本人
type CommentService struct {
	commentRepo interfaces.CommentRepository
	productRepo interfaces.ProductRepository
}

func NewCommentService(commentRepo interfaces.CommentRepository, productRepo interfaces.ProductRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, productRepo: productRepo}
}

var _ CommentServiceInterface = (*CommentService)(nil)

func (s *CommentService) Create(ctx context.Context, userID int, input *model.CommentInput) (*model.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if err := validateText(text, 1000); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load product", err)
	}
	if product == nil {
		return nil, errors.NotFound("Product not found")
	}

	now := time.Now()
	comment := &model.Comment{
		ProductID: product.ID,
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create comment", err)
	}
	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID), zap.Int("product_id", product.ID))
	return comment, nil
}

func (s *CommentService) GetByID(ctx context.Context, id int) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find comment", err)
	}
	if comment == nil {
		return nil, errors.NotFound("Comment not found")
	}
	return comment, nil
}

func (s *CommentService) GetByProduct(ctx context.Context, productID int) ([]*model.Comment, error) {
	comments, err := s.commentRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load comments", err)
	}
	return comments, nil
}

func (s *CommentService) GetByUser(ctx context.Context, userID int) ([]*model.Comment, error) {
	comments, err := s.commentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load comments", err)
	}
	return comments, nil
}

func (s *CommentService) GetAll(ctx context.Context) ([]*model.Comment, error) {
	comments, err := s.commentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load comments", err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, userID, id int, text string) (*model.Comment, error) {
	comment, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := validateText(text, 1000); err != nil {
		return nil, err
	}
	comment.Text = text
	comment.UpdatedAt = time.Now()
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update comment", err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, id int) error {
	comment, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete comment", err)
	}
	return nil
}

func (s *CommentService) owned(ctx context.Context, userID, id int) (*model.Comment, error) {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, errors.Forbidden("You can only modify your own comments")
	}
	return comment, nil
}

type FeedbackService struct {
	feedbackRepo interfaces.FeedbackRepository
}

func NewFeedbackService(feedbackRepo interfaces.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

var _ FeedbackServiceInterface = (*FeedbackService)(nil)

func (s *FeedbackService) Create(ctx context.Context, userID int, text string) (*model.Feedback, error) {
	text = strings.TrimSpace(text)
	if err := validateText(text, 2000); err != nil {
		return nil, err
	}
	now := time.Now()
	feedback := &model.Feedback{UserID: userID, Text: text, CreatedAt: now, UpdatedAt: now}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create feedback", err)
	}
	return feedback, nil
}

func (s *FeedbackService) GetByID(ctx context.Context, id int) (*model.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find feedback", err)
	}
	if feedback == nil {
		return nil, errors.NotFound("Feedback not found")
	}
	return feedback, nil
}

func (s *FeedbackService) GetByUser(ctx context.Context, userID int) ([]*model.Feedback, error) {
	list, err := s.feedbackRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load feedback", err)
	}
	return list, nil
}

func (s *FeedbackService) GetAll(ctx context.Context) ([]*model.Feedback, error) {
	list, err := s.feedbackRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load feedback", err)
	}
	return list, nil
}

func (s *FeedbackService) Update(ctx context.Context, userID, id int, text string) (*model.Feedback, error) {
	feedback, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := validateText(text, 2000); err != nil {
		return nil, err
	}
	feedback.Text = text
	feedback.UpdatedAt = time.Now()
	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update feedback", err)
	}
	return feedback, nil
}

func (s *FeedbackService) Delete(ctx context.Context, userID, id int) error {
	feedback, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.feedbackRepo.Delete(ctx, feedback.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete feedback", err)
	}
	return nil
}

func (s *FeedbackService) owned(ctx context.Context, userID, id int) (*model.Feedback, error) {
	feedback, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback.UserID != userID {
		return nil, errors.Forbidden("You can only modify your own feedback")
	}
	return feedback, nil
}

// validateText 按字符数计算长度
func validateText(text string, max int) error {
	n := len([]rune(text))
	if n == 0 {
		return errors.Validation("Text must not be blank")
	}
	if n > max {
		return errors.Newf(errors.ErrValidation, "Text must be at most %d characters", max)
	}
	return nil
}
