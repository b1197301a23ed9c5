// FILE: internal/service/usage_service.go
package service

import (
	"context"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/entitlement"

	"github.com/google/uuid"
)

type IUsageService interface {
	// LoadUsage returns the user's counters, creating the zero row on first
	// access. The insert is a no-op upsert so concurrent first loads are safe.
	LoadUsage(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, error)

	// RecordWeeklyPlan bumps all three counters for a full-plan generation.
	RecordWeeklyPlan(ctx context.Context, userId uuid.UUID) error

	// RecordGeneration bumps only totalGenerations, for single-meal events.
	RecordGeneration(ctx context.Context, userId uuid.UUID) error

	RemainingWeeklyPlans(ctx context.Context, userId uuid.UUID, bundle *entitlement.Bundle) (int, error)
	RemainingGenerations(ctx context.Context, userId uuid.UUID, bundle *entitlement.Bundle) (int, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *usageService) LoadUsage(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UsageRepository()

	if err := repo.EnsureExists(ctx, userId); err != nil {
		return nil, err
	}
	stats, err := repo.Find(ctx, userId)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		// EnsureExists just inserted or found the row; an empty read here
		// means the store is misbehaving, not a normal first access.
		s.logger.Error("USAGE", "Counter row missing after upsert", map[string]interface{}{
			"user_id": userId,
		})
		return &entity.UsageStats{UserId: userId}, nil
	}
	return stats, nil
}

func (s *usageService) RecordWeeklyPlan(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UsageRepository()

	if err := repo.EnsureExists(ctx, userId); err != nil {
		return err
	}

	// All three move together for a full plan. Each is a single server-side
	// UPDATE, so concurrent generations from two sessions both land.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	txRepo := uow.UsageRepository()
	if err := txRepo.IncrementWeeklyPlansCount(ctx, userId, 1); err != nil {
		return err
	}
	if err := txRepo.IncrementMealPlanCount(ctx, userId, 1); err != nil {
		return err
	}
	if err := txRepo.IncrementTotalGenerations(ctx, userId, 1); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *usageService) RecordGeneration(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UsageRepository()

	if err := repo.EnsureExists(ctx, userId); err != nil {
		return err
	}
	return repo.IncrementTotalGenerations(ctx, userId, 1)
}

func (s *usageService) RemainingWeeklyPlans(ctx context.Context, userId uuid.UUID, bundle *entitlement.Bundle) (int, error) {
	stats, err := s.LoadUsage(ctx, userId)
	if err != nil {
		return 0, err
	}
	return bundle.WeeklyPlans.Remaining(stats.WeeklyPlansCount), nil
}

func (s *usageService) RemainingGenerations(ctx context.Context, userId uuid.UUID, bundle *entitlement.Bundle) (int, error) {
	stats, err := s.LoadUsage(ctx, userId)
	if err != nil {
		return 0, err
	}
	return bundle.Generations.Remaining(stats.TotalGenerations), nil
}
