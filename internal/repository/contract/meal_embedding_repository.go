package contract

import (
	"context"

	"nutriplan-be/internal/entity"

	"github.com/google/uuid"
)

type MealEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.MealEmbedding) error
	DeleteByMealId(ctx context.Context, mealId uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	// SearchSimilar returns the user's closest meals by cosine distance.
	SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.MealEmbedding, error)
}
