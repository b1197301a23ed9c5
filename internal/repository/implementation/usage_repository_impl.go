package implementation

import (
	"context"
	"errors"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/mapper"
	"nutriplan-be/internal/model"
	"nutriplan-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageRepositoryImpl) EnsureExists(ctx context.Context, userId uuid.UUID) error {
	m := &model.UsageStats{UserId: userId}
	// ON CONFLICT DO NOTHING: a concurrent insert for the same user wins
	// harmlessly and existing counters are never reset.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(m).Error
}

func (r *UsageRepositoryImpl) Find(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, error) {
	var m model.UsageStats
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UsageRepositoryImpl) increment(ctx context.Context, userId uuid.UUID, column string, delta int) error {
	if delta <= 0 {
		return nil
	}
	// Single UPDATE with server-side arithmetic; concurrent writers cannot
	// clobber each other the way read-modify-write would.
	return r.db.WithContext(ctx).
		Model(&model.UsageStats{}).
		Where("user_id = ?", userId).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *UsageRepositoryImpl) IncrementMealPlanCount(ctx context.Context, userId uuid.UUID, delta int) error {
	return r.increment(ctx, userId, "meal_plan_count", delta)
}

func (r *UsageRepositoryImpl) IncrementTotalGenerations(ctx context.Context, userId uuid.UUID, delta int) error {
	return r.increment(ctx, userId, "total_generations", delta)
}

func (r *UsageRepositoryImpl) IncrementWeeklyPlansCount(ctx context.Context, userId uuid.UUID, delta int) error {
	return r.increment(ctx, userId, "weekly_plans_count", delta)
}
