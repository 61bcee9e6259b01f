package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"petshop-backend/internal/model"
)

type wishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) *wishlistRepository {
	return &wishlistRepository{db}
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID int) ([]*model.WishlistItem, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT id, user_id, product_id, created_at FROM wishlist_items WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	items := []*model.WishlistItem{}
	for rows.Next() {
		var item model.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, productID int) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = ? AND product_id = ?)`,
		userID, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return exists, nil
}

func (r *wishlistRepository) Create(ctx context.Context, item *model.WishlistItem) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO wishlist_items (user_id, product_id) VALUES (?, ?)`, item.UserID, item.ProductID)
	if err != nil {
		return wrapWriteError("failed to add wishlist item", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get wishlist item id: %w", err)
	}
	item.ID = int(id)
	return nil
}

// Delete 返回是否删除了记录
func (r *wishlistRepository) Delete(ctx context.Context, userID, productID int) (bool, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *wishlistRepository) DeleteByUserID(ctx context.Context, userID int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
