package implementation

import (
	"context"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/mapper"
	"nutriplan-be/internal/model"
	"nutriplan-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type MealEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MealMapper
}

func NewMealEmbeddingRepository(db *gorm.DB) contract.MealEmbeddingRepository {
	return &MealEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewMealMapper(),
	}
}

func (r *MealEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.MealEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.EmbeddingToEntity(m)
	return nil
}

func (r *MealEmbeddingRepositoryImpl) DeleteByMealId(ctx context.Context, mealId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("meal_id = ?", mealId).Delete(&model.MealEmbedding{}).Error
}

func (r *MealEmbeddingRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.MealEmbedding{}).Error
}

func (r *MealEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.MealEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.MealEmbedding

	// pgvector cosine distance: embedding_value <=> vector
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(vector))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.MealEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.EmbeddingToEntity(m)
	}
	return entities, nil
}
