package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartServiceInterface interface {
	GetCart(ctx context.Context, userID int) ([]*model.CartItemView, error)
	AddToCart(ctx context.Context, userID int, req *model.AddToCartRequest) (*model.CartItemView, error)
	UpdateQuantity(ctx context.Context, userID, cartID, quantity int) (*model.CartItemView, error)
	RemoveFromCart(ctx context.Context, userID, cartID int) error
	ClearCart(ctx context.Context, userID int) error
	GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error)
}

type CartService struct {
	tx          interfaces.Transactor
	cartRepo    interfaces.CartRepository
	productRepo interfaces.ProductRepository
}

func NewCartService(tx interfaces.Transactor, cartRepo interfaces.CartRepository, productRepo interfaces.ProductRepository) *CartService {
	return &CartService{tx: tx, cartRepo: cartRepo, productRepo: productRepo}
}

var _ CartServiceInterface = (*CartService)(nil)

func (s *CartService) GetCart(ctx context.Context, userID int) ([]*model.CartItemView, error) {
	items, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load cart", err)
	}

	views := make([]*model.CartItemView, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load product", err)
		}
		if product == nil {
			util.Logger.Warn("购物车中的商品已不存在", zap.Int("cart_id", item.ID), zap.Int("product_id", item.ProductID))
			continue
		}
		views = append(views, model.NewCartItemView(item, product))
	}
	return views, nil
}

// AddToCart 同一 (商品, 尺码) 累加数量，不新增行
func (s *CartService) AddToCart(ctx context.Context, userID int, req *model.AddToCartRequest) (*model.CartItemView, error) {
	if req.Quantity < 1 {
		return nil, errors.Validation("Quantity must be at least 1")
	}

	var view *model.CartItemView
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to load product", err)
		}
		if product == nil {
			return errors.NotFound("Product not found")
		}

		size := strings.TrimSpace(req.SelectedSize)
		if size == "" {
			size = string(product.Size)
		}

		item, err := s.cartRepo.FindByUserProductSize(ctx, userID, product.ID, size)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to load cart item", err)
		}

		if item != nil {
			item.Quantity += req.Quantity
			if err := s.cartRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
				return errors.Wrap(errors.ErrDatabase, "failed to update cart item", err)
			}
		} else {
			item = &model.CartItem{
				UserID:       userID,
				ProductID:    product.ID,
				Quantity:     req.Quantity,
				SelectedSize: size,
			}
			err := s.cartRepo.Create(ctx, item)
			if stderrors.Is(err, interfaces.ErrDuplicate) {
				// 并发加入了同一行，改为加锁读取后累加
				item, err = s.mergeConcurrent(ctx, userID, product.ID, size, req.Quantity)
			}
			if err != nil {
				return errors.Wrap(errors.ErrDatabase, "failed to add cart item", err)
			}
		}

		view = model.NewCartItemView(item, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) mergeConcurrent(ctx context.Context, userID, productID int, size string, quantity int) (*model.CartItem, error) {
	item, err := s.cartRepo.LockByUserProductSize(ctx, userID, productID, size)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("cart item %d/%s vanished after duplicate insert", productID, size)
	}
	item.Quantity += quantity
	if err := s.cartRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
		return nil, err
	}
	util.Logger.Info("购物车并发加入已合并", zap.Int("cart_id", item.ID), zap.Int("user_id", userID))
	return item, nil
}

// UpdateQuantity 数量小于等于0时删除该行并返回 nil
func (s *CartService) UpdateQuantity(ctx context.Context, userID, cartID, quantity int) (*model.CartItemView, error) {
	item, err := s.ownedItem(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to remove cart item", err)
		}
		return nil, nil
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load product", err)
	}
	if product == nil {
		return nil, errors.NotFound("Product not found")
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update cart item", err)
	}
	return model.NewCartItemView(item, product), nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, cartID int) error {
	item, err := s.ownedItem(ctx, userID, cartID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to remove cart item", err)
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int) error {
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to clear cart", err)
	}
	return nil
}

func (s *CartService) GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	views, err := s.GetCart(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range views {
		total = total.Add(v.TotalPrice)
	}
	return total, nil
}

func (s *CartService) ownedItem(ctx context.Context, userID, cartID int) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load cart item", err)
	}
	if item == nil {
		return nil, errors.NotFound("Cart item not found")
	}
	if item.UserID != userID {
		return nil, errors.Forbidden("You are not allowed to access this cart item")
	}
	return item, nil
}
