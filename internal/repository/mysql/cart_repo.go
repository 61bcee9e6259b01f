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

const cartColumns = `id, user_id, product_id, quantity, selected_size, created_at`

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *cartRepository {
	return &cartRepository{db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID int) ([]*model.CartItem, error) {
	return r.list(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = ? ORDER BY id`, userID)
}

// LockByUserID 下单时锁定用户购物车，并发加入的行要等事务结束
func (r *cartRepository) LockByUserID(ctx context.Context, userID int) ([]*model.CartItem, error) {
	return r.list(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = ? ORDER BY id FOR UPDATE`, userID)
}

func (r *cartRepository) list(ctx context.Context, query string, userID int) ([]*model.CartItem, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		util.Logger.Error("查询购物车失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*model.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartRepository) FindByID(ctx context.Context, id int) (*model.CartItem, error) {
	return r.findOne(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE id = ?`, id)
}

func (r *cartRepository) FindByUserProductSize(ctx context.Context, userID, productID int, size string) (*model.CartItem, error) {
	return r.findOne(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = ? AND product_id = ? AND selected_size = ?`,
		userID, productID, size)
}

func (r *cartRepository) LockByUserProductSize(ctx context.Context, userID, productID int, size string) (*model.CartItem, error) {
	return r.findOne(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = ? AND product_id = ? AND selected_size = ? FOR UPDATE`,
		userID, productID, size)
}

func (r *cartRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.CartItem, error) {
	item, err := scanCartItem(conn(ctx, r.db).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return item, nil
}

func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity, selected_size) VALUES (?, ?, ?, ?)`,
		item.UserID, item.ProductID, item.Quantity, item.SelectedSize)
	if err != nil {
		util.Logger.Error("加入购物车失败", zap.Error(err), zap.Int("user_id", item.UserID))
		return wrapWriteError("failed to create cart item", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get cart item id: %w", err)
	}
	item.ID = int(id)
	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id, quantity int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, id); err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		util.Logger.Error("清空购物车失败", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func scanCartItem(row rowScanner) (*model.CartItem, error) {
	var item model.CartItem
	if err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.SelectedSize, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
