package service

import (
	"context"
	"testing"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memMealRepo keeps meals in a slice and interprets the ownership and id
// filters the service actually uses.
type memMealRepo struct {
	meals   []*entity.Meal
	summary map[uuid.UUID]*entity.MealPlanSummary
}

func newMemMealRepo() *memMealRepo {
	return &memMealRepo{summary: map[uuid.UUID]*entity.MealPlanSummary{}}
}

func matches(m *entity.Meal, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if m.UserId != s.UserId {
				return false
			}
		}
	}
	return true
}

func (r *memMealRepo) Create(ctx context.Context, meal *entity.Meal) error {
	r.meals = append(r.meals, meal)
	return nil
}

func (r *memMealRepo) CreateBatch(ctx context.Context, meals []*entity.Meal) error {
	r.meals = append(r.meals, meals...)
	return nil
}

func (r *memMealRepo) Update(ctx context.Context, meal *entity.Meal) error {
	for i, m := range r.meals {
		if m.Id == meal.Id {
			r.meals[i] = meal
		}
	}
	return nil
}

func (r *memMealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.meals[:0]
	for _, m := range r.meals {
		if m.Id != id {
			kept = append(kept, m)
		}
	}
	r.meals = kept
	return nil
}

func (r *memMealRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	kept := r.meals[:0]
	for _, m := range r.meals {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	r.meals = kept
	return nil
}

func (r *memMealRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Meal, error) {
	for _, m := range r.meals {
		if matches(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMealRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Meal, error) {
	var out []*entity.Meal
	for _, m := range r.meals {
		if matches(m, specs) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMealRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

func (r *memMealRepo) UpsertSummary(ctx context.Context, summary *entity.MealPlanSummary) error {
	r.summary[summary.UserId] = summary
	return nil
}

func (r *memMealRepo) FindSummary(ctx context.Context, userId uuid.UUID) (*entity.MealPlanSummary, error) {
	return r.summary[userId], nil
}

type memEmbeddingRepo struct {
	byMeal map[uuid.UUID]uuid.UUID // mealId -> userId
}

func newMemEmbeddingRepo() *memEmbeddingRepo {
	return &memEmbeddingRepo{byMeal: map[uuid.UUID]uuid.UUID{}}
}

func (r *memEmbeddingRepo) Create(ctx context.Context, embedding *entity.MealEmbedding) error {
	r.byMeal[embedding.MealId] = embedding.UserId
	return nil
}

func (r *memEmbeddingRepo) DeleteByMealId(ctx context.Context, mealId uuid.UUID) error {
	delete(r.byMeal, mealId)
	return nil
}

func (r *memEmbeddingRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	for mealId, owner := range r.byMeal {
		if owner == userId {
			delete(r.byMeal, mealId)
		}
	}
	return nil
}

func (r *memEmbeddingRepo) SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.MealEmbedding, error) {
	return nil, nil
}

type mealUnitOfWork struct {
	memUnitOfWork
	meals      *memMealRepo
	embeddings *memEmbeddingRepo
}

func (u *mealUnitOfWork) MealRepository() contract.MealRepository {
	return u.meals
}

func (u *mealUnitOfWork) MealEmbeddingRepository() contract.MealEmbeddingRepository {
	return u.embeddings
}

type mealFactory struct {
	uow *mealUnitOfWork
}

func (f *mealFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newTestMealService() (IMealService, *memMealRepo, *memEmbeddingRepo) {
	meals := newMemMealRepo()
	embeddings := newMemEmbeddingRepo()
	factory := &mealFactory{uow: &mealUnitOfWork{meals: meals, embeddings: embeddings}}
	svc := NewMealService(factory, nil, nil, nil, noopLogger{})
	return svc, meals, embeddings
}

func replaceMeal(name, mealType string, calories, dayOffset int) dto.CreateMealRequest {
	return dto.CreateMealRequest{
		Name:     name,
		Type:     mealType,
		Calories: calories,
		Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset),
	}
}

func TestReplacePlanIsExact(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, repo, _ := newTestMealService()

	// Seed an existing plan plus another user's meals that must survive.
	otherUser := uuid.New()
	_, err := svc.Create(ctx, userId, &dto.CreateMealRequest{Name: "Old oatmeal", Type: "breakfast", Calories: 300})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, userId, &dto.CreateMealRequest{Name: "Old soup", Type: "dinner", Calories: 500})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, otherUser, &dto.CreateMealRequest{Name: "Neighbor salad", Type: "lunch", Calories: 400})
	assert.NoError(t, err)

	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	res, err := svc.ReplacePlan(ctx, userId, &dto.ReplacePlanRequest{
		WeekStart: weekStart,
		Source:    "generated",
		Meals: []dto.CreateMealRequest{
			replaceMeal("Eggs", "breakfast", 400, 0),
			replaceMeal("Chicken bowl", "lunch", 650, 0),
			replaceMeal("Cod with potato", "dinner", 550, 0),
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)

	// The user's set is exactly the replacement; nothing old leaks through.
	mine, err := svc.List(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, 3, mine.Total)
	names := map[string]bool{}
	for _, m := range mine.Meals {
		names[m.Name] = true
	}
	assert.False(t, names["Old oatmeal"])
	assert.True(t, names["Eggs"])

	// Other users are untouched.
	theirs, err := svc.List(ctx, otherUser)
	assert.NoError(t, err)
	assert.Equal(t, 1, theirs.Total)

	// Summary reflects the new plan.
	summary := repo.summary[userId]
	if assert.NotNil(t, summary) {
		assert.Equal(t, 3, summary.MealCount)
		assert.Equal(t, 1600, summary.TotalCalories)
		assert.Equal(t, entity.PlanSourceGenerated, summary.Source)
		assert.True(t, summary.WeekStart.Equal(weekStart))
	}
}

func TestReplacePlanShrinksToSmallerSet(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _, _ := newTestMealService()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, userId, &dto.CreateMealRequest{Name: "Filler", Type: "snack", Calories: 100})
		assert.NoError(t, err)
	}

	res, err := svc.ReplacePlan(ctx, userId, &dto.ReplacePlanRequest{
		WeekStart: time.Now(),
		Meals:     []dto.CreateMealRequest{replaceMeal("Single dinner", "dinner", 800, 0)},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	list, err := svc.List(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "Single dinner", list.Meals[0].Name)
}

func TestDeleteRemovesEmbedding(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _, embeddings := newTestMealService()

	created, err := svc.Create(ctx, userId, &dto.CreateMealRequest{Name: "Pasta", Type: "dinner", Calories: 700})
	assert.NoError(t, err)

	embeddings.byMeal[created.Id] = userId

	assert.NoError(t, svc.Delete(ctx, userId, created.Id))
	assert.NotContains(t, embeddings.byMeal, created.Id)

	got, err := svc.Show(ctx, userId, created.Id)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestShowEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	svc, _, _ := newTestMealService()

	created, err := svc.Create(ctx, owner, &dto.CreateMealRequest{Name: "Yogurt", Type: "snack", Calories: 150})
	assert.NoError(t, err)

	got, err := svc.Show(ctx, stranger, created.Id)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _, _ := newTestMealService()

	created, err := svc.Create(ctx, userId, &dto.CreateMealRequest{Name: "Rice bowl", Type: "lunch", Calories: 600, Protein: 30})
	assert.NoError(t, err)

	newCalories := 550
	updated, err := svc.Update(ctx, userId, created.Id, &dto.UpdateMealRequest{Calories: &newCalories})
	assert.NoError(t, err)

	assert.Equal(t, 550, updated.Calories)
	assert.Equal(t, "Rice bowl", updated.Name)
	assert.Equal(t, float64(30), updated.Protein)
	assert.NotNil(t, updated.UpdatedAt)
}
