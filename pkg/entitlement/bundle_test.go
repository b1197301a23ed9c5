package entitlement

import (
	"testing"
	"time"

	"nutriplan-be/internal/entity"
)

func premiumPlan() *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		Name:              "Premium Monthly",
		Slug:              "premium-monthly",
		SupportTier:       entity.SupportPremium,
		MaxMealPlans:      -1,
		MaxWeeklyPlans:    -1,
		MaxGenerations:    -1,
		MaxRecipes:        -1,
		AiRecommendations: true,
		Analytics:         true,
		Achievements:      true,
	}
}

func activeSub(expiresAt time.Time) *entity.UserSubscription {
	return &entity.UserSubscription{
		Status:    entity.SubscriptionStatusActive,
		ExpiresAt: expiresAt,
	}
}

func TestFreeBundleDefaults(t *testing.T) {
	b := FreeBundle()

	if b.MealPlans != 5 || b.WeeklyPlans != 5 || b.Generations != 5 || b.Recipes != 5 {
		t.Errorf("free limits = %d/%d/%d/%d, want 5/5/5/5",
			b.MealPlans, b.WeeklyPlans, b.Generations, b.Recipes)
	}
	if b.IsPremium {
		t.Error("free bundle must not be premium")
	}
	for _, feature := range []string{FeatureAiRecommendations, FeatureAnalytics, FeatureAchievements} {
		if b.Has(feature) {
			t.Errorf("free bundle grants %q, want locked", feature)
		}
	}
	if b.ExpiresAt != nil {
		t.Error("free bundle must not carry an expiry")
	}
}

func TestFreeBundleIsStable(t *testing.T) {
	// Callers mutate their copy: a second call must still be pristine.
	first := FreeBundle()
	first.Capabilities[FeatureAnalytics] = true
	first.MealPlans = 99

	second := FreeBundle()
	if second.Has(FeatureAnalytics) {
		t.Error("mutation of one FreeBundle leaked into the next")
	}
	if second.MealPlans != 5 {
		t.Errorf("second FreeBundle MealPlans = %d, want 5", second.MealPlans)
	}
}

func TestBundleHasFailsClosed(t *testing.T) {
	b := FreeBundle()
	if b.Has("no_such_feature") {
		t.Error("unknown feature key must be false")
	}

	var nilCaps Bundle
	if nilCaps.Has(FeatureAnalytics) {
		t.Error("nil capability map must be false")
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	plan := premiumPlan()

	tests := []struct {
		name        string
		sub         *entity.UserSubscription
		plan        *entity.SubscriptionPlan
		wantPremium bool
	}{
		{"nil subscription", nil, plan, false},
		{"nil plan", activeSub(now.Add(time.Hour)), nil, false},
		{"pending subscription", &entity.UserSubscription{Status: entity.SubscriptionStatusPending, ExpiresAt: now.Add(time.Hour)}, plan, false},
		{"canceled subscription", &entity.UserSubscription{Status: entity.SubscriptionStatusCanceled, ExpiresAt: now.Add(time.Hour)}, plan, false},
		{"expired term", activeSub(now.Add(-time.Minute)), plan, false},
		{"expiry exactly now", activeSub(now), plan, false},
		{"active subscription", activeSub(now.Add(time.Hour)), plan, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Resolve(tt.sub, tt.plan, now)
			if b.IsPremium != tt.wantPremium {
				t.Errorf("IsPremium = %v, want %v", b.IsPremium, tt.wantPremium)
			}
			if !tt.wantPremium && b.PlanSlug != "free" {
				t.Errorf("degraded bundle slug = %q, want free", b.PlanSlug)
			}
		})
	}
}

func TestResolveActiveCarriesPlanLimits(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 1, 0)

	b := Resolve(activeSub(expires), premiumPlan(), now)

	if !b.MealPlans.IsUnlimited() || !b.Generations.IsUnlimited() {
		t.Error("premium limits should be unlimited")
	}
	if !b.Has(FeatureAiRecommendations) || !b.Has(FeatureAnalytics) || !b.Has(FeatureAchievements) {
		t.Error("premium bundle should grant all capabilities")
	}
	if b.ExpiresAt == nil || !b.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want %v", b.ExpiresAt, expires)
	}
	if b.SupportTier != entity.SupportPremium {
		t.Errorf("SupportTier = %q, want premium", b.SupportTier)
	}
}

func TestTimeLeft(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	free := FreeBundle()
	if free.TimeLeft(now) != nil {
		t.Error("free bundle has no countdown")
	}

	b := Resolve(activeSub(now.Add(49*time.Hour+30*time.Minute)), premiumPlan(), now)
	tr := b.TimeLeft(now)
	if tr == nil {
		t.Fatal("expected a countdown for an active term")
	}
	if tr.Days != 2 || tr.Hours != 1 {
		t.Errorf("TimeLeft = %dd %dh, want 2d 1h", tr.Days, tr.Hours)
	}

	past := now.Add(-time.Hour)
	expired := &Bundle{ExpiresAt: &past}
	if expired.TimeLeft(now) != nil {
		t.Error("expired term has no countdown")
	}
}

func TestExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresIn time.Duration
		want      bool
	}{
		{"eight days out", 8 * 24 * time.Hour, false},
		{"seven days exactly", 7 * 24 * time.Hour, true},
		{"just under seven days", 7*24*time.Hour - time.Second, true},
		{"one hour out", time.Hour, true},
		{"already expired", -time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expires := now.Add(tt.expiresIn)
			b := &Bundle{ExpiresAt: &expires}
			if got := b.ExpiringSoon(now); got != tt.want {
				t.Errorf("ExpiringSoon(+%v) = %v, want %v", tt.expiresIn, got, tt.want)
			}
		})
	}

	if FreeBundle().ExpiringSoon(now) {
		t.Error("free bundle never expires")
	}
}
