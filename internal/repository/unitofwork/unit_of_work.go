package unitofwork

import (
	"context"

	"nutriplan-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	UsageRepository() contract.UsageRepository
	MealRepository() contract.MealRepository
	MealEmbeddingRepository() contract.MealEmbeddingRepository
	AchievementRepository() contract.AchievementRepository
}
