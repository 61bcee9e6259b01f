package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

type PaymentCardServiceInterface interface {
	GetCards(ctx context.Context, userID int) ([]*model.PaymentCard, error)
	AddCard(ctx context.Context, userID int, req *model.AddCardRequest) (*model.PaymentCard, error)
	DeleteCard(ctx context.Context, userID, cardID int) error
	SetDefaultCard(ctx context.Context, userID, cardID int) (*model.PaymentCard, error)
}

// PaymentCardService 维护每个用户至多一张默认卡：有卡时恰好一张
type PaymentCardService struct {
	tx       interfaces.Transactor
	cardRepo interfaces.PaymentCardRepository
	now      func() time.Time
}

func NewPaymentCardService(tx interfaces.Transactor, cardRepo interfaces.PaymentCardRepository) *PaymentCardService {
	return &PaymentCardService{tx: tx, cardRepo: cardRepo, now: time.Now}
}

var _ PaymentCardServiceInterface = (*PaymentCardService)(nil)

// GetCards 默认卡在前，其余按 id 升序
func (s *PaymentCardService) GetCards(ctx context.Context, userID int) ([]*model.PaymentCard, error) {
	cards, err := s.cardRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load payment cards", err)
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].IsDefault != cards[j].IsDefault {
			return cards[i].IsDefault
		}
		return cards[i].ID < cards[j].ID
	})
	return cards, nil
}

func (s *PaymentCardService) AddCard(ctx context.Context, userID int, req *model.AddCardRequest) (*model.PaymentCard, error) {
	number := req.CardNumber
	if err := ValidateCardNumber(number); err != nil {
		return nil, err
	}
	if err := ValidateExpiry(req.ExpiryMonth, req.ExpiryYear, s.now()); err != nil {
		return nil, err
	}
	if err := ValidateCVV(req.CVV); err != nil {
		return nil, err
	}

	card := &model.PaymentCard{
		UserID:         userID,
		MaskedNumber:   MaskCardNumber(number),
		CardholderName: strings.TrimSpace(req.CardholderName),
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		LastFourDigits: lastFour(number),
		IsDefault:      req.IsDefault,
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.cardRepo.LockByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to lock payment cards", err)
		}
		for _, c := range existing {
			if c.LastFourDigits == card.LastFourDigits {
				return errors.New(errors.ErrResourceExists, "Card already exists")
			}
		}

		// 第一张卡强制为默认卡
		if len(existing) == 0 {
			card.IsDefault = true
		}
		if card.IsDefault && len(existing) > 0 {
			if err := s.cardRepo.ClearDefault(ctx, userID); err != nil {
				return errors.Wrap(errors.ErrDatabase, "failed to clear default card", err)
			}
		}

		card.CreatedAt = s.now()
		if err := s.cardRepo.Create(ctx, card); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to save payment card", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	util.Logger.Info("支付卡添加成功",
		zap.Int("user_id", userID),
		zap.Int("card_id", card.ID),
		zap.Bool("is_default", card.IsDefault))
	return card, nil
}

// DeleteCard 删除默认卡时把剩余卡中 id 最小的一张设为默认
func (s *PaymentCardService) DeleteCard(ctx context.Context, userID, cardID int) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		cards, err := s.cardRepo.LockByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to lock payment cards", err)
		}
		card, err := s.ownedCard(ctx, userID, cardID)
		if err != nil {
			return err
		}

		if err := s.cardRepo.Delete(ctx, card.ID); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to delete payment card", err)
		}
		if !card.IsDefault {
			return nil
		}

		var replacement *model.PaymentCard
		for _, c := range cards {
			if c.ID == card.ID {
				continue
			}
			if replacement == nil || c.ID < replacement.ID {
				replacement = c
			}
		}
		if replacement == nil {
			return nil
		}
		if err := s.cardRepo.SetDefault(ctx, replacement.ID); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to promote default card", err)
		}
		util.Logger.Info("默认卡已转移", zap.Int("user_id", userID), zap.Int("card_id", replacement.ID))
		return nil
	})
}

func (s *PaymentCardService) SetDefaultCard(ctx context.Context, userID, cardID int) (*model.PaymentCard, error) {
	var card *model.PaymentCard
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.cardRepo.LockByUserID(ctx, userID); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to lock payment cards", err)
		}
		owned, err := s.ownedCard(ctx, userID, cardID)
		if err != nil {
			return err
		}
		if owned.IsDefault {
			card = owned
			return nil
		}

		if err := s.cardRepo.ClearDefault(ctx, userID); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to clear default card", err)
		}
		if err := s.cardRepo.SetDefault(ctx, owned.ID); err != nil {
			return errors.Wrap(errors.ErrDatabase, "failed to set default card", err)
		}
		owned.IsDefault = true
		card = owned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *PaymentCardService) ownedCard(ctx context.Context, userID, cardID int) (*model.PaymentCard, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find payment card", err)
	}
	if card == nil {
		return nil, errors.NotFound("Card not found")
	}
	if card.UserID != userID {
		return nil, errors.Forbidden("Unauthorized to access this card")
	}
	return card, nil
}
