package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
)

type StatsServiceInterface interface {
	GetSystemStats(ctx context.Context) (*model.SystemStats, error)
}

type StatsService struct {
	userRepo    interfaces.UserRepository
	productRepo interfaces.ProductRepository
	orderRepo   interfaces.OrderRepository
	analytics   *errors.ErrorAnalytics
}

func NewStatsService(
	userRepo interfaces.UserRepository,
	productRepo interfaces.ProductRepository,
	orderRepo interfaces.OrderRepository,
	analytics *errors.ErrorAnalytics,
) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		analytics:   analytics,
	}
}

var _ StatsServiceInterface = (*StatsService)(nil)

func (s *StatsService) GetSystemStats(ctx context.Context) (*model.SystemStats, error) {
	stats := &model.SystemStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to count users", err)
	}
	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to count products", err)
	}
	if stats.TotalOrders, err = s.orderRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to count orders", err)
	}
	if s.analytics != nil {
		stats.Errors = s.analytics.GetStats()
	}
	return stats, nil
}
