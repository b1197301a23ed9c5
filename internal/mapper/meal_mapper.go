package mapper

import (
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type MealMapper struct{}

func NewMealMapper() *MealMapper {
	return &MealMapper{}
}

func (m *MealMapper) ToEntity(meal *model.Meal) *entity.Meal {
	if meal == nil {
		return nil
	}
	return &entity.Meal{
		Id:        meal.Id,
		UserId:    meal.UserId,
		Name:      meal.Name,
		Type:      entity.MealType(meal.Type),
		Calories:  meal.Calories,
		Protein:   meal.Protein,
		Carbs:     meal.Carbs,
		Fat:       meal.Fat,
		Date:      meal.Date,
		CreatedAt: meal.CreatedAt,
		UpdatedAt: meal.UpdatedAt,
	}
}

func (m *MealMapper) ToModel(meal *entity.Meal) *model.Meal {
	if meal == nil {
		return nil
	}
	return &model.Meal{
		Id:        meal.Id,
		UserId:    meal.UserId,
		Name:      meal.Name,
		Type:      string(meal.Type),
		Calories:  meal.Calories,
		Protein:   meal.Protein,
		Carbs:     meal.Carbs,
		Fat:       meal.Fat,
		Date:      meal.Date,
		CreatedAt: meal.CreatedAt,
		UpdatedAt: meal.UpdatedAt,
	}
}

func (m *MealMapper) ToEntities(meals []*model.Meal) []*entity.Meal {
	entities := make([]*entity.Meal, 0, len(meals))
	for _, meal := range meals {
		entities = append(entities, m.ToEntity(meal))
	}
	return entities
}

func (m *MealMapper) SummaryToEntity(s *model.MealPlanSummary) *entity.MealPlanSummary {
	if s == nil {
		return nil
	}
	return &entity.MealPlanSummary{
		Id:            s.Id,
		UserId:        s.UserId,
		WeekStart:     s.WeekStart,
		MealCount:     s.MealCount,
		TotalCalories: s.TotalCalories,
		Source:        entity.PlanSource(s.Source),
		GeneratedAt:   s.GeneratedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *MealMapper) SummaryToModel(s *entity.MealPlanSummary) *model.MealPlanSummary {
	if s == nil {
		return nil
	}
	return &model.MealPlanSummary{
		Id:            s.Id,
		UserId:        s.UserId,
		WeekStart:     s.WeekStart,
		MealCount:     s.MealCount,
		TotalCalories: s.TotalCalories,
		Source:        string(s.Source),
		GeneratedAt:   s.GeneratedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *MealMapper) EmbeddingToEntity(e *model.MealEmbedding) *entity.MealEmbedding {
	if e == nil {
		return nil
	}
	return &entity.MealEmbedding{
		Id:        e.Id,
		MealId:    e.MealId,
		UserId:    e.UserId,
		Document:  e.Document,
		Vector:    e.EmbeddingValue.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *MealMapper) EmbeddingToModel(e *entity.MealEmbedding) *model.MealEmbedding {
	if e == nil {
		return nil
	}
	return &model.MealEmbedding{
		Id:             e.Id,
		MealId:         e.MealId,
		UserId:         e.UserId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.Vector),
		CreatedAt:      e.CreatedAt,
	}
}
