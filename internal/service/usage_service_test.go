package service

import (
	"context"
	"testing"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/entitlement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memUsageRepo is an in-memory UsageRepository for exercising the counter
// semantics without a database.
type memUsageRepo struct {
	rows map[uuid.UUID]*entity.UsageStats
}

func newMemUsageRepo() *memUsageRepo {
	return &memUsageRepo{rows: map[uuid.UUID]*entity.UsageStats{}}
}

func (r *memUsageRepo) EnsureExists(ctx context.Context, userId uuid.UUID) error {
	if _, ok := r.rows[userId]; !ok {
		r.rows[userId] = &entity.UsageStats{UserId: userId}
	}
	return nil
}

func (r *memUsageRepo) Find(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, error) {
	row, ok := r.rows[userId]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *memUsageRepo) IncrementMealPlanCount(ctx context.Context, userId uuid.UUID, delta int) error {
	r.rows[userId].MealPlanCount += delta
	return nil
}

func (r *memUsageRepo) IncrementTotalGenerations(ctx context.Context, userId uuid.UUID, delta int) error {
	r.rows[userId].TotalGenerations += delta
	return nil
}

func (r *memUsageRepo) IncrementWeeklyPlansCount(ctx context.Context, userId uuid.UUID, delta int) error {
	r.rows[userId].WeeklyPlansCount += delta
	return nil
}

// memUnitOfWork satisfies just enough of the unit of work for usage tests.
type memUnitOfWork struct {
	usage *memUsageRepo
}

func (u *memUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memUnitOfWork) Commit() error                   { return nil }
func (u *memUnitOfWork) Rollback() error                 { return nil }

func (u *memUnitOfWork) UserRepository() contract.UserRepository { return nil }
func (u *memUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return nil
}
func (u *memUnitOfWork) UsageRepository() contract.UsageRepository { return u.usage }
func (u *memUnitOfWork) MealRepository() contract.MealRepository { return nil }
func (u *memUnitOfWork) MealEmbeddingRepository() contract.MealEmbeddingRepository {
	return nil
}
func (u *memUnitOfWork) AchievementRepository() contract.AchievementRepository {
	return nil
}

type memFactory struct {
	uow *memUnitOfWork
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newTestUsageService() (IUsageService, *memUsageRepo) {
	repo := newMemUsageRepo()
	factory := &memFactory{uow: &memUnitOfWork{usage: repo}}
	return NewUsageService(factory, noopLogger{}), repo
}

func TestLoadUsageCreatesZeroRow(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, repo := newTestUsageService()

	stats, err := svc.LoadUsage(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.MealPlanCount)
	assert.Equal(t, 0, stats.TotalGenerations)
	assert.Equal(t, 0, stats.WeeklyPlansCount)

	// The row itself was materialized, not just a transient zero value.
	assert.Contains(t, repo.rows, userId)
}

func TestRecordWeeklyPlanBumpsAllThree(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _ := newTestUsageService()

	assert.NoError(t, svc.RecordWeeklyPlan(ctx, userId))
	assert.NoError(t, svc.RecordWeeklyPlan(ctx, userId))

	stats, err := svc.LoadUsage(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.WeeklyPlansCount)
	assert.Equal(t, 2, stats.MealPlanCount)
	assert.Equal(t, 2, stats.TotalGenerations)
}

func TestRecordGenerationBumpsOnlyTotal(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _ := newTestUsageService()

	assert.NoError(t, svc.RecordGeneration(ctx, userId))
	assert.NoError(t, svc.RecordGeneration(ctx, userId))
	assert.NoError(t, svc.RecordGeneration(ctx, userId))

	stats, err := svc.LoadUsage(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TotalGenerations)
	assert.Equal(t, 0, stats.MealPlanCount)
	assert.Equal(t, 0, stats.WeeklyPlansCount)
}

func TestCountersOnlyGrow(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _ := newTestUsageService()

	last := 0
	for i := 0; i < 5; i++ {
		assert.NoError(t, svc.RecordGeneration(ctx, userId))
		stats, err := svc.LoadUsage(ctx, userId)
		assert.NoError(t, err)
		assert.Greater(t, stats.TotalGenerations, last)
		last = stats.TotalGenerations
	}
}

func TestRemainingAgainstBundle(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	svc, _ := newTestUsageService()

	for i := 0; i < 3; i++ {
		assert.NoError(t, svc.RecordWeeklyPlan(ctx, userId))
	}

	free := entitlement.FreeBundle()
	left, err := svc.RemainingWeeklyPlans(ctx, userId, free)
	assert.NoError(t, err)
	assert.Equal(t, 2, left)

	// Overshoot past the cap floors at zero.
	for i := 0; i < 4; i++ {
		assert.NoError(t, svc.RecordWeeklyPlan(ctx, userId))
	}
	left, err = svc.RemainingWeeklyPlans(ctx, userId, free)
	assert.NoError(t, err)
	assert.Equal(t, 0, left)

	// Unlimited passes the sentinel straight through.
	unlimited := &entitlement.Bundle{Generations: entitlement.Unlimited, WeeklyPlans: entitlement.Unlimited}
	left, err = svc.RemainingGenerations(ctx, userId, unlimited)
	assert.NoError(t, err)
	assert.Equal(t, -1, left)
}
