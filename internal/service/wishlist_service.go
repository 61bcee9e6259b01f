package service

import (
	"context"
	stderrors "errors"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"time"
)

type WishlistServiceInterface interface {
	GetWishlist(ctx context.Context, userID int) ([]*model.WishlistItemView, error)
	AddToWishlist(ctx context.Context, userID, productID int) (*model.WishlistItemView, error)
	RemoveFromWishlist(ctx context.Context, userID, productID int) error
	IsInWishlist(ctx context.Context, userID, productID int) (bool, error)
	ClearWishlist(ctx context.Context, userID int) error
}

type WishlistService struct {
	wishlistRepo interfaces.WishlistRepository
	productRepo  interfaces.ProductRepository
}

func NewWishlistService(wishlistRepo interfaces.WishlistRepository, productRepo interfaces.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

var _ WishlistServiceInterface = (*WishlistService)(nil)

func (s *WishlistService) GetWishlist(ctx context.Context, userID int) ([]*model.WishlistItemView, error) {
	items, err := s.wishlistRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load wishlist", err)
	}
	views := make([]*model.WishlistItemView, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load product", err)
		}
		if product == nil {
			continue
		}
		views = append(views, model.NewWishlistItemView(item, product))
	}
	return views, nil
}

// AddToWishlist 重复添加返回冲突，不合并
func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID int) (*model.WishlistItemView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load product", err)
	}
	if product == nil {
		return nil, errors.NotFound("Product not found")
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to check wishlist", err)
	}
	if exists {
		return nil, errors.New(errors.ErrResourceExists, "Product already in wishlist")
	}

	item := &model.WishlistItem{UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		// 并发请求都通过了存在性检查，由唯一索引兜底
		if stderrors.Is(err, interfaces.ErrDuplicate) {
			return nil, errors.Wrap(errors.ErrResourceExists, "Product already in wishlist", err)
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to add to wishlist", err)
	}
	return model.NewWishlistItemView(item, product), nil
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID int) error {
	removed, err := s.wishlistRepo.Delete(ctx, userID, productID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to remove from wishlist", err)
	}
	if !removed {
		return errors.NotFound("Product not in wishlist")
	}
	return nil
}

func (s *WishlistService) IsInWishlist(ctx context.Context, userID, productID int) (bool, error) {
	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "failed to check wishlist", err)
	}
	return exists, nil
}

func (s *WishlistService) ClearWishlist(ctx context.Context, userID int) error {
	if err := s.wishlistRepo.DeleteByUserID(ctx, userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to clear wishlist", err)
	}
	return nil
}
