package implementation

import (
	"context"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/mapper"
	"nutriplan-be/internal/model"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AchievementMapper
}

func NewAchievementRepository(db *gorm.DB) contract.AchievementRepository {
	return &AchievementRepositoryImpl{
		db:     db,
		mapper: mapper.NewAchievementMapper(),
	}
}

func (r *AchievementRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AchievementRepositoryImpl) Create(ctx context.Context, achievement *entity.Achievement) error {
	m := r.mapper.ToModel(achievement)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*achievement = *r.mapper.ToEntity(m)
	return nil
}

func (r *AchievementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Achievement, error) {
	var models []*model.Achievement
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AchievementRepositoryImpl) FindAllByEventType(ctx context.Context, eventType string) ([]*entity.Achievement, error) {
	var models []*model.Achievement
	err := r.db.WithContext(ctx).
		Where("event_type = ? AND is_active = ?", eventType, true).
		Order("threshold ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AchievementRepositoryImpl) Unlock(ctx context.Context, userId, achievementId uuid.UUID) (bool, error) {
	m := &model.UserAchievement{
		UserId:        userId,
		AchievementId: achievementId,
	}
	// The composite unique index makes re-unlocks a silent no-op.
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AchievementRepositoryImpl) FindUnlocked(ctx context.Context, userId uuid.UUID) ([]*entity.UserAchievement, error) {
	var models []*model.UserAchievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("unlocked_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.UserAchievementsToEntities(models), nil
}
