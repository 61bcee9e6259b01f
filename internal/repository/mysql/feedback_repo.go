package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"petshop-backend/internal/model"
)

const feedbackColumns = `id, user_id, text, created_at, updated_at`

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *feedbackRepository {
	return &feedbackRepository{db}
}

func (r *feedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO feedback (user_id, text, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		f.UserID, f.Text, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get feedback id: %w", err)
	}
	f.ID = int(id)
	return nil
}

func (r *feedbackRepository) FindByID(ctx context.Context, id int) (*model.Feedback, error) {
	var f model.Feedback
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = ?`, id).
		Scan(&f.ID, &f.UserID, &f.Text, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &f, nil
}

func (r *feedbackRepository) FindByUserID(ctx context.Context, userID int) ([]*model.Feedback, error) {
	return r.list(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]*model.Feedback, error) {
	return r.list(ctx, `SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC, id DESC`)
}

func (r *feedbackRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Feedback, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	list := []*model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Text, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

func (r *feedbackRepository) Update(ctx context.Context, f *model.Feedback) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE feedback SET text = ?, updated_at = ? WHERE id = ?`, f.Text, f.UpdatedAt, f.ID); err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}
