package implementation

import (
	"context"
	"errors"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/mapper"
	"nutriplan-be/internal/model"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MealRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MealMapper
}

func NewMealRepository(db *gorm.DB) contract.MealRepository {
	return &MealRepositoryImpl{
		db:     db,
		mapper: mapper.NewMealMapper(),
	}
}

func (r *MealRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MealRepositoryImpl) Create(ctx context.Context, meal *entity.Meal) error {
	m := r.mapper.ToModel(meal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*meal = *r.mapper.ToEntity(m)
	return nil
}

func (r *MealRepositoryImpl) CreateBatch(ctx context.Context, meals []*entity.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	models := make([]*model.Meal, len(meals))
	for i, meal := range meals {
		models[i] = r.mapper.ToModel(meal)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*meals[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *MealRepositoryImpl) Update(ctx context.Context, meal *entity.Meal) error {
	m := r.mapper.ToModel(meal)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*meal = *r.mapper.ToEntity(m)
	return nil
}

func (r *MealRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Meal{}, id).Error
}

func (r *MealRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Meal{}).Error
}

func (r *MealRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Meal, error) {
	var m model.Meal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MealRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Meal, error) {
	var models []*model.Meal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MealRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Meal{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MealRepositoryImpl) UpsertSummary(ctx context.Context, summary *entity.MealPlanSummary) error {
	m := r.mapper.SummaryToModel(summary)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(m).Error
	if err != nil {
		return err
	}
	*summary = *r.mapper.SummaryToEntity(m)
	return nil
}

func (r *MealRepositoryImpl) FindSummary(ctx context.Context, userId uuid.UUID) (*entity.MealPlanSummary, error) {
	var m model.MealPlanSummary
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SummaryToEntity(&m), nil
}
