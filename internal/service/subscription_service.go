// FILE: internal/service/subscription_service.go
// Facade combining entitlement resolution and usage accounting into the
// single status view clients consume.
package service

import (
	"context"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/pkg/entitlement"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	// HasFeature consults the capability map only; numeric limits are a
	// separate axis and never coerce to booleans.
	HasFeature(ctx context.Context, userId uuid.UUID, feature string) bool

	CanCreateMealPlan(ctx context.Context, userId uuid.UUID) (bool, error)
	CanCreateWeeklyPlan(ctx context.Context, userId uuid.UUID) (bool, error)
	CanGenerate(ctx context.Context, userId uuid.UUID) (bool, error)

	GetPlanInfo(ctx context.Context, userId uuid.UUID) *dto.PlanInfo
	GetTimeRemaining(ctx context.Context, userId uuid.UUID) *dto.TimeRemaining
	IsExpiringSoon(ctx context.Context, userId uuid.UUID) bool

	// GetStatus assembles the full composite payload in one call.
	GetStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)

	// CheckCanGenerateWeekly gates a weekly generation, returning a typed
	// limit error for the 429 path when the quota is spent.
	CheckCanGenerateWeekly(ctx context.Context, userId uuid.UUID) error
	CheckCanGenerate(ctx context.Context, userId uuid.UUID) error
}

type subscriptionService struct {
	entitlements IEntitlementService
	usage        IUsageService
	logger       logger.ILogger
	now          func() time.Time
}

func NewSubscriptionService(entitlements IEntitlementService, usage IUsageService, log logger.ILogger) ISubscriptionService {
	return &subscriptionService{
		entitlements: entitlements,
		usage:        usage,
		logger:       log,
		now:          time.Now,
	}
}

func (s *subscriptionService) HasFeature(ctx context.Context, userId uuid.UUID, feature string) bool {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	return bundle.Has(feature)
}

func (s *subscriptionService) CanCreateMealPlan(ctx context.Context, userId uuid.UUID) (bool, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if bundle.MealPlans.IsUnlimited() {
		return true, nil
	}
	stats, err := s.usage.LoadUsage(ctx, userId)
	if err != nil {
		return false, err
	}
	return bundle.MealPlans.Allows(stats.MealPlanCount), nil
}

func (s *subscriptionService) CanCreateWeeklyPlan(ctx context.Context, userId uuid.UUID) (bool, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if bundle.WeeklyPlans.IsUnlimited() {
		return true, nil
	}
	stats, err := s.usage.LoadUsage(ctx, userId)
	if err != nil {
		return false, err
	}
	return bundle.WeeklyPlans.Allows(stats.WeeklyPlansCount), nil
}

func (s *subscriptionService) CanGenerate(ctx context.Context, userId uuid.UUID) (bool, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if bundle.Generations.IsUnlimited() {
		return true, nil
	}
	stats, err := s.usage.LoadUsage(ctx, userId)
	if err != nil {
		return false, err
	}
	return bundle.Generations.Allows(stats.TotalGenerations), nil
}

func (s *subscriptionService) GetPlanInfo(ctx context.Context, userId uuid.UUID) *dto.PlanInfo {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	return planInfoFromBundle(bundle)
}

func planInfoFromBundle(bundle *entitlement.Bundle) *dto.PlanInfo {
	return &dto.PlanInfo{
		Name:        bundle.PlanName,
		Slug:        bundle.PlanSlug,
		IsPremium:   bundle.IsPremium,
		SupportTier: string(bundle.SupportTier),
	}
}

func (s *subscriptionService) GetTimeRemaining(ctx context.Context, userId uuid.UUID) *dto.TimeRemaining {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	left := bundle.TimeLeft(s.now())
	if left == nil {
		return nil
	}
	return &dto.TimeRemaining{
		ExpiresAt: left.ExpiresAt,
		Days:      left.Days,
		Hours:     left.Hours,
	}
}

func (s *subscriptionService) IsExpiringSoon(ctx context.Context, userId uuid.UUID) bool {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	return bundle.ExpiringSoon(s.now())
}

func (s *subscriptionService) GetStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)

	stats, err := s.usage.LoadUsage(ctx, userId)
	if err != nil {
		// Same availability posture as resolution: degrade, don't block.
		s.logger.Warn("SUBSCRIPTION", "Usage load failed, reporting zero counters", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		stats = &entity.UsageStats{UserId: userId}
	}

	now := s.now()
	var remaining *dto.TimeRemaining
	if left := bundle.TimeLeft(now); left != nil {
		remaining = &dto.TimeRemaining{
			ExpiresAt: left.ExpiresAt,
			Days:      left.Days,
			Hours:     left.Hours,
		}
	}

	return &dto.SubscriptionStatusResponse{
		Plan: *planInfoFromBundle(bundle),
		Features: map[string]bool{
			entitlement.FeatureAiRecommendations: bundle.Has(entitlement.FeatureAiRecommendations),
			entitlement.FeatureAnalytics:         bundle.Has(entitlement.FeatureAnalytics),
			entitlement.FeatureAchievements:      bundle.Has(entitlement.FeatureAchievements),
		},
		Limits: map[string]int{
			dto.LimitTypeMealPlans:   bundle.MealPlans.Int(),
			dto.LimitTypeWeeklyPlans: bundle.WeeklyPlans.Int(),
			dto.LimitTypeGenerations: bundle.Generations.Int(),
			dto.LimitTypeRecipes:     bundle.Recipes.Int(),
		},
		Usage: dto.UsageResponse{
			MealPlanCount:    stats.MealPlanCount,
			TotalGenerations: stats.TotalGenerations,
			WeeklyPlansCount: stats.WeeklyPlansCount,
		},
		MealPlans:        usageLimit(bundle.MealPlans, stats.MealPlanCount),
		WeeklyPlans:      usageLimit(bundle.WeeklyPlans, stats.WeeklyPlansCount),
		Generations:      usageLimit(bundle.Generations, stats.TotalGenerations),
		TimeRemaining:    remaining,
		IsExpiringSoon:   bundle.ExpiringSoon(now),
		UpgradeAvailable: !bundle.IsPremium,
	}, nil
}

func usageLimit(limit entitlement.Limit, used int) dto.UsageLimit {
	return dto.UsageLimit{
		Used:      used,
		Limit:     limit.Int(),
		Remaining: limit.Remaining(used),
		CanUse:    limit.Allows(used),
	}
}

func (s *subscriptionService) CheckCanGenerateWeekly(ctx context.Context, userId uuid.UUID) error {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if bundle.WeeklyPlans.IsUnlimited() {
		return nil
	}
	stats, err := s.usage.LoadUsage(ctx, userId)
	if err != nil {
		return err
	}
	if !bundle.WeeklyPlans.Allows(stats.WeeklyPlansCount) {
		return &dto.LimitExceededError{
			LimitType: dto.LimitTypeWeeklyPlans,
			Limit:     bundle.WeeklyPlans.Int(),
			Used:      stats.WeeklyPlansCount,
		}
	}
	return nil
}

func (s *subscriptionService) CheckCanGenerate(ctx context.Context, userId uuid.UUID) error {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if bundle.Generations.IsUnlimited() {
		return nil
	}
	stats, err := s.usage.LoadUsage(ctx, userId)
	if err != nil {
		return err
	}
	if !bundle.Generations.Allows(stats.TotalGenerations) {
		return &dto.LimitExceededError{
			LimitType: dto.LimitTypeGenerations,
			Limit:     bundle.Generations.Int(),
			Used:      stats.TotalGenerations,
		}
	}
	return nil
}
