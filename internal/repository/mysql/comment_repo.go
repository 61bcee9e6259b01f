package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"petshop-backend/internal/model"
)

const commentColumns = `id, product_id, user_id, text, created_at, updated_at`

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO comments (product_id, user_id, text, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ProductID, c.UserID, c.Text, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get comment id: %w", err)
	}
	c.ID = int(id)
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int) (*model.Comment, error) {
	var c model.Comment
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.ProductID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &c, nil
}

func (r *commentRepository) FindByProductID(ctx context.Context, productID int) ([]*model.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE product_id = ? ORDER BY created_at DESC, id DESC`, productID)
}

func (r *commentRepository) FindByUserID(ctx context.Context, userID int) ([]*model.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (r *commentRepository) FindAll(ctx context.Context) ([]*model.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY created_at DESC, id DESC`)
}

func (r *commentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Comment, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.ProductID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Update(ctx context.Context, c *model.Comment) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE comments SET product_id = ?, text = ?, updated_at = ? WHERE id = ?`,
		c.ProductID, c.Text, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
