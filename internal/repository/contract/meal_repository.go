package contract

import (
	"context"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MealRepository interface {
	Create(ctx context.Context, meal *entity.Meal) error
	CreateBatch(ctx context.Context, meals []*entity.Meal) error
	Update(ctx context.Context, meal *entity.Meal) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Meal, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Meal, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Summary (one row per user)
	UpsertSummary(ctx context.Context, summary *entity.MealPlanSummary) error
	FindSummary(ctx context.Context, userId uuid.UUID) (*entity.MealPlanSummary, error)
}
