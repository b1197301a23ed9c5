package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubSubscriptionRepo overrides only the lookups entitlement resolution
// touches; everything else panics via the embedded nil interface.
type stubSubscriptionRepo struct {
	contract.SubscriptionRepository

	sub     *entity.UserSubscription
	subErr  error
	plan    *entity.SubscriptionPlan
	planErr error
}

func (r *stubSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	return r.sub, r.subErr
}

func (r *stubSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	return r.plan, r.planErr
}

type subUnitOfWork struct {
	memUnitOfWork
	subs contract.SubscriptionRepository
}

func (u *subUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return u.subs
}

type subFactory struct {
	uow *subUnitOfWork
}

func (f *subFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newTestEntitlementService(repo contract.SubscriptionRepository, now time.Time) *entitlementService {
	return &entitlementService{
		uowFactory: &subFactory{uow: &subUnitOfWork{subs: repo}},
		logger:     noopLogger{},
		now:        func() time.Time { return now },
	}
}

func TestResolveBundleFreeFallbacks(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	userId := uuid.New()
	planId := uuid.New()

	active := &entity.UserSubscription{
		PlanId:    planId,
		Status:    entity.SubscriptionStatusActive,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}

	tests := []struct {
		name string
		repo *stubSubscriptionRepo
	}{
		{"never subscribed", &stubSubscriptionRepo{}},
		{"subscription lookup fails", &stubSubscriptionRepo{subErr: errors.New("db down")}},
		{"plan lookup fails", &stubSubscriptionRepo{sub: active, planErr: errors.New("db down")}},
		{"plan row missing", &stubSubscriptionRepo{sub: active}},
		{"subscription expired", &stubSubscriptionRepo{
			sub: &entity.UserSubscription{
				PlanId:    planId,
				Status:    entity.SubscriptionStatusActive,
				ExpiresAt: now.Add(-time.Hour),
			},
			plan: &entity.SubscriptionPlan{Id: planId, Name: "Premium"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestEntitlementService(tt.repo, now)
			b := svc.ResolveBundle(context.Background(), userId)
			assert.False(t, b.IsPremium)
			assert.Equal(t, "free", b.PlanSlug)
			assert.Equal(t, 5, b.MealPlans.Int())
		})
	}
}

func TestResolveBundleActivePremium(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	planId := uuid.New()

	repo := &stubSubscriptionRepo{
		sub: &entity.UserSubscription{
			PlanId:    planId,
			Status:    entity.SubscriptionStatusActive,
			ExpiresAt: now.Add(30 * 24 * time.Hour),
		},
		plan: &entity.SubscriptionPlan{
			Id:             planId,
			Name:           "Premium Monthly",
			Slug:           "premium-monthly",
			MaxMealPlans:   -1,
			MaxWeeklyPlans: -1,
			MaxGenerations: -1,
			MaxRecipes:     -1,
			Analytics:      true,
		},
	}

	svc := newTestEntitlementService(repo, now)
	b := svc.ResolveBundle(context.Background(), uuid.New())

	assert.True(t, b.IsPremium)
	assert.Equal(t, "premium-monthly", b.PlanSlug)
	assert.True(t, b.MealPlans.IsUnlimited())
	assert.True(t, b.Has("analytics"))
	assert.False(t, b.Has("achievements"))
}

// historySubscriptionRepo keeps a full per-user subscription history and
// answers FindOneSubscription the way the real query would: filters applied,
// newest row first.
type historySubscriptionRepo struct {
	contract.SubscriptionRepository

	subs  []*entity.UserSubscription
	plans map[uuid.UUID]*entity.SubscriptionPlan
}

func (r *historySubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	matches := make([]*entity.UserSubscription, 0, len(r.subs))
	for _, sub := range r.subs {
		if subscriptionMatches(sub, specs) {
			matches = append(matches, sub)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches[0], nil
}

func subscriptionMatches(sub *entity.UserSubscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.OwnedBy:
			if sub.UserId != sp.UserId {
				return false
			}
		case specification.ByStatus:
			if sub.Status != sp.Status {
				return false
			}
		case specification.NotExpiredAt:
			if !sub.ExpiresAt.After(sp.Now) {
				return false
			}
		}
	}
	return true
}

func (r *historySubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.plans[byId.ID], nil
		}
	}
	return nil, nil
}

// An abandoned checkout inserts a newer pending row next to the live term.
// Resolution must keep granting from the active row, not the newest one.
func TestResolveBundleIgnoresNewerPendingCheckout(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	userId := uuid.New()
	planId := uuid.New()

	repo := &historySubscriptionRepo{
		subs: []*entity.UserSubscription{
			{
				UserId:    userId,
				PlanId:    planId,
				Status:    entity.SubscriptionStatusActive,
				ExpiresAt: now.Add(20 * 24 * time.Hour),
				CreatedAt: now.Add(-10 * 24 * time.Hour),
			},
			{
				UserId:    userId,
				PlanId:    planId,
				Status:    entity.SubscriptionStatusPending,
				ExpiresAt: now,
				CreatedAt: now.Add(-time.Hour),
			},
		},
		plans: map[uuid.UUID]*entity.SubscriptionPlan{
			planId: {
				Id:             planId,
				Name:           "Premium Monthly",
				Slug:           "premium-monthly",
				MaxMealPlans:   -1,
				MaxWeeklyPlans: -1,
				MaxGenerations: -1,
				MaxRecipes:     -1,
				Analytics:      true,
			},
		},
	}

	svc := newTestEntitlementService(repo, now)

	b := svc.ResolveBundle(context.Background(), userId)
	assert.True(t, b.IsPremium)
	assert.Equal(t, "premium-monthly", b.PlanSlug)
	assert.True(t, b.MealPlans.IsUnlimited())

	active, err := svc.IsActive(context.Background(), userId)
	assert.NoError(t, err)
	assert.True(t, active)
}

// With only dead rows left (expired term, canceled checkout) the user is free.
func TestResolveBundleFreeWhenNoRowGrants(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	userId := uuid.New()
	planId := uuid.New()

	repo := &historySubscriptionRepo{
		subs: []*entity.UserSubscription{
			{
				UserId:    userId,
				PlanId:    planId,
				Status:    entity.SubscriptionStatusActive,
				ExpiresAt: now.Add(-24 * time.Hour),
				CreatedAt: now.Add(-40 * 24 * time.Hour),
			},
			{
				UserId:    userId,
				PlanId:    planId,
				Status:    entity.SubscriptionStatusCanceled,
				ExpiresAt: now,
				CreatedAt: now.Add(-time.Hour),
			},
		},
		plans: map[uuid.UUID]*entity.SubscriptionPlan{
			planId: {Id: planId, Slug: "premium-monthly"},
		},
	}

	svc := newTestEntitlementService(repo, now)

	b := svc.ResolveBundle(context.Background(), userId)
	assert.False(t, b.IsPremium)
	assert.Equal(t, "free", b.PlanSlug)

	active, err := svc.IsActive(context.Background(), userId)
	assert.NoError(t, err)
	assert.False(t, active)
}

func TestIsActiveAtBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	userId := uuid.New()

	repo := &stubSubscriptionRepo{
		sub: &entity.UserSubscription{
			Status:    entity.SubscriptionStatusActive,
			ExpiresAt: now,
		},
	}

	// expiresAt == now is no longer active; the predicate is strictly after.
	svc := newTestEntitlementService(repo, now)
	active, err := svc.IsActive(context.Background(), userId)
	assert.NoError(t, err)
	assert.False(t, active)

	repo.sub.ExpiresAt = now.Add(time.Second)
	active, err = svc.IsActive(context.Background(), userId)
	assert.NoError(t, err)
	assert.True(t, active)
}
