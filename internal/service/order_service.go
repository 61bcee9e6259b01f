package service

import (
	"context"
	"fmt"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, userID, paymentCardID int) (*model.Order, error)
	GetUserOrders(ctx context.Context, userID int) ([]*model.Order, error)
	GetOrderByID(ctx context.Context, userID, orderID int) (*model.Order, error)
}

type OrderService struct {
	tx          interfaces.Transactor
	orderRepo   interfaces.OrderRepository
	cartRepo    interfaces.CartRepository
	productRepo interfaces.ProductRepository
	cardRepo    interfaces.PaymentCardRepository
	userRepo    interfaces.UserRepository
	notifier    Notifier
	now         func() time.Time
}

func NewOrderService(
	tx interfaces.Transactor,
	orderRepo interfaces.OrderRepository,
	cartRepo interfaces.CartRepository,
	productRepo interfaces.ProductRepository,
	cardRepo interfaces.PaymentCardRepository,
	userRepo interfaces.UserRepository,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		tx:          tx,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cardRepo:    cardRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)

// CreateOrder 锁定购物车后下单，写明细和删除购物车行在同一事务中完成
func (s *OrderService) CreateOrder(ctx context.Context, userID, paymentCardID int) (*model.Order, error) {
	var order *model.Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cartItems, err := s.cartRepo.LockByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to load cart", err)
		}
		if len(cartItems) == 0 {
			return errors.New(errors.ErrEmptyCart, "Cart is empty")
		}

		card, err := s.cardRepo.FindByID(ctx, paymentCardID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to find payment card", err)
		}
		if card == nil {
			return errors.NotFound("Payment card not found")
		}
		if card.UserID != userID {
			return errors.Forbidden("Unauthorized to use this payment card")
		}

		items := make([]*model.OrderItem, 0, len(cartItems))
		total := decimal.Zero
		for _, ci := range cartItems {
			product, err := s.productRepo.FindByID(ctx, ci.ProductID)
			if err != nil {
				return errors.Wrap(errors.ErrDatabase, "failed to load product", err)
			}
			if product == nil {
				return errors.Newf(errors.ErrResourceNotFound, "Product not found: %d", ci.ProductID)
			}
			subtotal := product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
			items = append(items, &model.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				Price:        product.Price,
				Quantity:     ci.Quantity,
				SelectedSize: ci.SelectedSize,
				Subtotal:     subtotal,
			})
			total = total.Add(subtotal)
		}

		now := s.now()
		order = &model.Order{
			UserID:              userID,
			OrderNumber:         generateOrderNumber(now),
			TotalAmount:         total,
			Status:              model.OrderStatusPending,
			PaymentCardLastFour: card.LastFourDigits,
			Items:               items,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to create order", err)
		}
		// 只删除已下单的行
		for _, ci := range cartItems {
			if err := s.cartRepo.Delete(ctx, ci.ID); err != nil {
				return errors.Wrap(errors.ErrDatabase, "failed to clear cart", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	util.Logger.Info("订单创建成功",
		zap.Int("user_id", userID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.StringFixed(2)))
	s.notifyOrder(ctx, order)
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID int) ([]*model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID int) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find order", err)
	}
	if order == nil {
		return nil, errors.NotFound("Order not found")
	}
	if order.UserID != userID {
		return nil, errors.Forbidden("Unauthorized to access this order")
	}
	return order, nil
}

func (s *OrderService) notifyOrder(ctx context.Context, order *model.Order) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}
	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		util.Logger.Warn("无法发送订单确认邮件", zap.Error(err), zap.Int("user_id", order.UserID))
		return
	}
	s.notifier.SendOrderConfirmation(user, order)
}

// generateOrderNumber 格式 ORD-YYYYMMDD-XXXXXXXX
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
