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

const cardColumns = `id, user_id, masked_number, cardholder_name, expiry_month, expiry_year, last_four_digits, is_default, created_at`

type paymentCardRepository struct {
	db *sql.DB
}

func NewPaymentCardRepository(db *sql.DB) *paymentCardRepository {
	return &paymentCardRepository{db}
}

func (r *paymentCardRepository) FindByUserID(ctx context.Context, userID int) ([]*model.PaymentCard, error) {
	return r.list(ctx, `SELECT `+cardColumns+` FROM payment_cards WHERE user_id = ? ORDER BY id`, userID)
}

// LockByUserID 必须在事务中调用，锁住用户全部卡片直到提交
func (r *paymentCardRepository) LockByUserID(ctx context.Context, userID int) ([]*model.PaymentCard, error) {
	return r.list(ctx, `SELECT `+cardColumns+` FROM payment_cards WHERE user_id = ? ORDER BY id FOR UPDATE`, userID)
}

func (r *paymentCardRepository) list(ctx context.Context, query string, userID int) ([]*model.PaymentCard, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		util.Logger.Error("查询支付卡失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to list payment cards: %w", err)
	}
	defer rows.Close()

	cards := []*model.PaymentCard{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *paymentCardRepository) FindByID(ctx context.Context, id int) (*model.PaymentCard, error) {
	card, err := scanCard(conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM payment_cards WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment card: %w", err)
	}
	return card, nil
}

func (r *paymentCardRepository) Create(ctx context.Context, card *model.PaymentCard) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO payment_cards (user_id, masked_number, cardholder_name, expiry_month, expiry_year, last_four_digits, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		card.UserID, card.MaskedNumber, card.CardholderName, card.ExpiryMonth, card.ExpiryYear,
		card.LastFourDigits, card.IsDefault)
	if err != nil {
		util.Logger.Error("保存支付卡失败", zap.Error(err), zap.Int("user_id", card.UserID))
		return fmt.Errorf("failed to create payment card: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get payment card id: %w", err)
	}
	card.ID = int(id)
	return nil
}

func (r *paymentCardRepository) Delete(ctx context.Context, id int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM payment_cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete payment card: %w", err)
	}
	return nil
}

// ClearDefault 取消用户所有卡片的默认标记
func (r *paymentCardRepository) ClearDefault(ctx context.Context, userID int) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE payment_cards SET is_default = false WHERE user_id = ? AND is_default = true`, userID)
	if err != nil {
		util.Logger.Error("取消默认支付卡失败", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to unset default cards: %w", err)
	}
	return nil
}

func (r *paymentCardRepository) SetDefault(ctx context.Context, id int) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE payment_cards SET is_default = true WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to set default card: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		util.Logger.Warn("默认支付卡未更新", zap.Int("card_id", id))
	}
	return nil
}

func scanCard(row rowScanner) (*model.PaymentCard, error) {
	var c model.PaymentCard
	if err := row.Scan(&c.ID, &c.UserID, &c.MaskedNumber, &c.CardholderName, &c.ExpiryMonth,
		&c.ExpiryYear, &c.LastFourDigits, &c.IsDefault, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
