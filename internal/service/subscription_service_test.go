package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/pkg/entitlement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

var _ logger.ILogger = noopLogger{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubEntitlements struct {
	bundle *entitlement.Bundle
}

func (s *stubEntitlements) GetSubscription(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error) {
	return nil, nil
}

func (s *stubEntitlements) IsActive(ctx context.Context, userId uuid.UUID) (bool, error) {
	return s.bundle.IsPremium, nil
}

func (s *stubEntitlements) ResolveBundle(ctx context.Context, userId uuid.UUID) *entitlement.Bundle {
	return s.bundle
}

type stubUsage struct {
	stats *entity.UsageStats
	err   error
}

func (s *stubUsage) LoadUsage(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, error) {
	return s.stats, s.err
}

func (s *stubUsage) RecordWeeklyPlan(ctx context.Context, userId uuid.UUID) error { return nil }
func (s *stubUsage) RecordGeneration(ctx context.Context, userId uuid.UUID) error { return nil }

func (s *stubUsage) RemainingWeeklyPlans(ctx context.Context, userId uuid.UUID, bundle *entitlement.Bundle) (int, error) {
	return bundle.WeeklyPlans.Remaining(s.stats.WeeklyPlansCount), s.err
}

func (s *stubUsage) RemainingGenerations(ctx context.Context, userId uuid.UUID, bundle *entitlement.Bundle) (int, error) {
	return bundle.Generations.Remaining(s.stats.TotalGenerations), s.err
}

func newTestSubscriptionService(bundle *entitlement.Bundle, stats *entity.UsageStats, now time.Time) ISubscriptionService {
	return &subscriptionService{
		entitlements: &stubEntitlements{bundle: bundle},
		usage:        &stubUsage{stats: stats},
		logger:       noopLogger{},
		now:          func() time.Time { return now },
	}
}

func premiumBundle(expiresAt time.Time) *entitlement.Bundle {
	return &entitlement.Bundle{
		PlanName:    "Premium Monthly",
		PlanSlug:    "premium-monthly",
		IsPremium:   true,
		SupportTier: entity.SupportPremium,
		MealPlans:   entitlement.Unlimited,
		WeeklyPlans: entitlement.Unlimited,
		Generations: entitlement.Unlimited,
		Recipes:     entitlement.Unlimited,
		Capabilities: map[string]bool{
			entitlement.FeatureAiRecommendations: true,
			entitlement.FeatureAnalytics:         true,
			entitlement.FeatureAchievements:      true,
		},
		ExpiresAt: &expiresAt,
	}
}

func TestHasFeature(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Now()

	free := newTestSubscriptionService(entitlement.FreeBundle(), &entity.UsageStats{}, now)
	assert.False(t, free.HasFeature(ctx, userId, entitlement.FeatureAnalytics))
	assert.False(t, free.HasFeature(ctx, userId, "made_up_feature"))

	premium := newTestSubscriptionService(premiumBundle(now.Add(time.Hour)), &entity.UsageStats{}, now)
	assert.True(t, premium.HasFeature(ctx, userId, entitlement.FeatureAnalytics))
	assert.False(t, premium.HasFeature(ctx, userId, "made_up_feature"))
}

func TestCanCreateAgainstFreeLimits(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Now()

	under := newTestSubscriptionService(entitlement.FreeBundle(), &entity.UsageStats{
		MealPlanCount:    4,
		WeeklyPlansCount: 4,
		TotalGenerations: 4,
	}, now)

	ok, err := under.CanCreateMealPlan(ctx, userId)
	assert.NoError(t, err)
	assert.True(t, ok)

	at := newTestSubscriptionService(entitlement.FreeBundle(), &entity.UsageStats{
		MealPlanCount:    5,
		WeeklyPlansCount: 5,
		TotalGenerations: 5,
	}, now)

	ok, err = at.CanCreateMealPlan(ctx, userId)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = at.CanCreateWeeklyPlan(ctx, userId)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = at.CanGenerate(ctx, userId)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCanGenerateUnlimitedSkipsUsageLoad(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Now()

	// Usage store is down but the cap is unlimited, so the gate passes
	// without ever touching it.
	svc := &subscriptionService{
		entitlements: &stubEntitlements{bundle: premiumBundle(now.Add(time.Hour))},
		usage:        &stubUsage{err: errors.New("usage store down")},
		logger:       noopLogger{},
		now:          func() time.Time { return now },
	}

	ok, err := svc.CanGenerate(ctx, userId)
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, svc.CheckCanGenerate(ctx, userId))
	assert.NoError(t, svc.CheckCanGenerateWeekly(ctx, userId))
}

func TestCheckCanGenerateWeeklyTypedError(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Now()

	svc := newTestSubscriptionService(entitlement.FreeBundle(), &entity.UsageStats{
		WeeklyPlansCount: 5,
		TotalGenerations: 5,
	}, now)

	err := svc.CheckCanGenerateWeekly(ctx, userId)
	var limitErr *dto.LimitExceededError
	if assert.ErrorAs(t, err, &limitErr) {
		assert.Equal(t, dto.LimitTypeWeeklyPlans, limitErr.LimitType)
		assert.Equal(t, 5, limitErr.Limit)
		assert.Equal(t, 5, limitErr.Used)
	}

	err = svc.CheckCanGenerate(ctx, userId)
	if assert.ErrorAs(t, err, &limitErr) {
		assert.Equal(t, dto.LimitTypeGenerations, limitErr.LimitType)
	}
}

func TestGetStatusComposite(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	svc := newTestSubscriptionService(entitlement.FreeBundle(), &entity.UsageStats{
		MealPlanCount:    2,
		TotalGenerations: 7,
		WeeklyPlansCount: 1,
	}, now)

	status, err := svc.GetStatus(ctx, userId)
	assert.NoError(t, err)

	assert.Equal(t, "free", status.Plan.Slug)
	assert.False(t, status.Plan.IsPremium)
	assert.True(t, status.UpgradeAvailable)
	assert.Nil(t, status.TimeRemaining)
	assert.False(t, status.IsExpiringSoon)

	assert.Equal(t, 5, status.Limits[dto.LimitTypeMealPlans])
	assert.Equal(t, 2, status.Usage.MealPlanCount)

	// Overshoot renders as zero remaining, never negative.
	assert.Equal(t, 0, status.Generations.Remaining)
	assert.False(t, status.Generations.CanUse)
	assert.Equal(t, 3, status.MealPlans.Remaining)
	assert.True(t, status.MealPlans.CanUse)
}

func TestGetStatusPremiumCountdown(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expires := now.Add(3*24*time.Hour + 5*time.Hour)

	svc := newTestSubscriptionService(premiumBundle(expires), &entity.UsageStats{}, now)

	status, err := svc.GetStatus(ctx, userId)
	assert.NoError(t, err)

	assert.True(t, status.Plan.IsPremium)
	assert.False(t, status.UpgradeAvailable)
	assert.Equal(t, -1, status.Limits[dto.LimitTypeGenerations])
	assert.Equal(t, -1, status.Generations.Remaining)
	assert.True(t, status.Generations.CanUse)

	if assert.NotNil(t, status.TimeRemaining) {
		assert.Equal(t, 3, status.TimeRemaining.Days)
		assert.Equal(t, 5, status.TimeRemaining.Hours)
	}
	assert.True(t, status.IsExpiringSoon)
}

func TestIsExpiringSoonBoundary(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seven := newTestSubscriptionService(premiumBundle(now.Add(7*24*time.Hour)), &entity.UsageStats{}, now)
	assert.True(t, seven.IsExpiringSoon(ctx, userId))

	eight := newTestSubscriptionService(premiumBundle(now.Add(8*24*time.Hour)), &entity.UsageStats{}, now)
	assert.False(t, eight.IsExpiringSoon(ctx, userId))

	free := newTestSubscriptionService(entitlement.FreeBundle(), &entity.UsageStats{}, now)
	assert.False(t, free.IsExpiringSoon(ctx, userId))
}

func TestGetStatusDegradesWhenUsageFails(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	now := time.Now()

	svc := &subscriptionService{
		entitlements: &stubEntitlements{bundle: entitlement.FreeBundle()},
		usage:        &stubUsage{err: errors.New("usage store down")},
		logger:       noopLogger{},
		now:          func() time.Time { return now },
	}

	status, err := svc.GetStatus(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, 0, status.Usage.MealPlanCount)
	assert.Equal(t, 5, status.MealPlans.Remaining)
}
