package entitlement

import (
	"time"

	"nutriplan-be/internal/entity"
)

// Feature keys consulted through Bundle.Has.
const (
	FeatureAiRecommendations = "ai_recommendations"
	FeatureAnalytics         = "analytics"
	FeatureAchievements      = "achievements"
)

// Bundle is the resolved set of limits and capabilities for one user.
type Bundle struct {
	PlanName    string
	PlanSlug    string
	IsPremium   bool
	SupportTier entity.SupportTier

	MealPlans   Limit
	WeeklyPlans Limit
	Generations Limit
	Recipes     Limit

	Capabilities map[string]bool
	ExpiresAt    *time.Time
}

// Has reports a named capability. Unknown keys are false, never an error:
// a typo fails closed.
func (b *Bundle) Has(feature string) bool {
	return b.Capabilities[feature]
}

// FreeBundle is what every user gets with no active subscription, and the
// fallback whenever resolution fails. Limits here are deliberately small.
func FreeBundle() *Bundle {
	return &Bundle{
		PlanName:    "Free",
		PlanSlug:    "free",
		IsPremium:   false,
		SupportTier: entity.SupportBasic,
		MealPlans:   5,
		WeeklyPlans: 5,
		Generations: 5,
		Recipes:     5,
		Capabilities: map[string]bool{
			FeatureAiRecommendations: false,
			FeatureAnalytics:         false,
			FeatureAchievements:      false,
		},
	}
}

// Resolve computes the bundle for a subscription/plan pair at the given
// instant. Any hole in the inputs (no subscription, inactive, expired,
// missing plan) degrades to the free bundle rather than erroring.
func Resolve(sub *entity.UserSubscription, plan *entity.SubscriptionPlan, now time.Time) *Bundle {
	if sub == nil || plan == nil {
		return FreeBundle()
	}
	if !sub.ActiveAt(now) {
		return FreeBundle()
	}

	expiresAt := sub.ExpiresAt
	return &Bundle{
		PlanName:    plan.Name,
		PlanSlug:    plan.Slug,
		IsPremium:   true,
		SupportTier: plan.SupportTier,
		MealPlans:   Limit(plan.MaxMealPlans),
		WeeklyPlans: Limit(plan.MaxWeeklyPlans),
		Generations: Limit(plan.MaxGenerations),
		Recipes:     Limit(plan.MaxRecipes),
		Capabilities: map[string]bool{
			FeatureAiRecommendations: plan.AiRecommendations,
			FeatureAnalytics:         plan.Analytics,
			FeatureAchievements:      plan.Achievements,
		},
		ExpiresAt: &expiresAt,
	}
}

// TimeRemaining is the structured countdown to expiry. Formatting is left
// to clients so server strings never bake in a locale.
type TimeRemaining struct {
	ExpiresAt time.Time
	Days      int
	Hours     int
}

// TimeLeft returns the remaining term, or nil for free-tier bundles and
// already-expired terms.
func (b *Bundle) TimeLeft(now time.Time) *TimeRemaining {
	if b.ExpiresAt == nil || !b.ExpiresAt.After(now) {
		return nil
	}
	d := b.ExpiresAt.Sub(now)
	return &TimeRemaining{
		ExpiresAt: *b.ExpiresAt,
		Days:      int(d.Hours()) / 24,
		Hours:     int(d.Hours()) % 24,
	}
}

// ExpiringSoon reports whether the term ends within seven days. Free-tier
// bundles never expire.
func (b *Bundle) ExpiringSoon(now time.Time) bool {
	if b.ExpiresAt == nil || !b.ExpiresAt.After(now) {
		return false
	}
	return b.ExpiresAt.Sub(now) <= 7*24*time.Hour
}
