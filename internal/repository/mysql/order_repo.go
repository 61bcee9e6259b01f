package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"petshop-backend/internal/model"
	"petshop-backend/internal/util"

	"go.uber.org/zap"
)

const orderColumns = `id, user_id, order_number, total_amount, status, payment_card_last_four, created_at, updated_at`

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *orderRepository {
	return &orderRepository{db}
}

// Create 写入订单和明细，调用方负责放在事务中
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	util.Logger.Info("开始创建订单",
		zap.Int("user_id", order.UserID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))

	db := conn(ctx, r.db)
	result, err := db.ExecContext(ctx, `
		INSERT INTO orders (user_id, order_number, total_amount, status, payment_card_last_four, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.OrderNumber, order.TotalAmount, order.Status, order.PaymentCardLastFour,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		util.Logger.Error("插入订单失败", zap.Error(err))
		return fmt.Errorf("failed to create order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get order id: %w", err)
	}
	order.ID = int(id)

	for _, item := range order.Items {
		item.OrderID = order.ID
		res, err := db.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, product_image, price, quantity, selected_size, subtotal)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.OrderID, item.ProductID, item.ProductName, item.ProductImage, item.Price,
			item.Quantity, item.SelectedSize, item.Subtotal)
		if err != nil {
			util.Logger.Error("插入订单明细失败", zap.Error(err), zap.Int("order_id", order.ID))
			return fmt.Errorf("failed to create order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get order item id: %w", err)
		}
		item.ID = int(itemID)
	}

	util.Logger.Info("订单创建成功", zap.Int("order_id", order.ID))
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int) (*model.Order, error) {
	order, err := scanOrder(conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if err := r.attachItems(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// FindByUserID 按创建时间倒序
func (r *orderRepository) FindByUserID(ctx context.Context, userID int) ([]*model.Order, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int]*model.Order, len(orders))
	args := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		o.Items = []*model.OrderItem{}
		byID[o.ID] = o
		args = append(args, o.ID)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_image, price, quantity, selected_size, subtotal
		FROM order_items WHERE order_id IN (`+placeholders(len(args))+`) ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductImage,
			&item.Price, &item.Quantity, &item.SelectedSize, &item.Subtotal); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, &item)
		}
	}
	return rows.Err()
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.TotalAmount, &o.Status,
		&o.PaymentCardLastFour, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
