// FILE: internal/dto/plan_dto.go
// DTOs for the public plan catalog and entitlement status checking
package dto

import (
	"time"

	"github.com/google/uuid"
)

// PlanWithFeaturesResponse is returned by GET /api/plans (public)
type PlanWithFeaturesResponse struct {
	Id            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Tagline       string        `json:"tagline"`
	Price         float64       `json:"price"`
	Currency      string        `json:"currency"`
	BillingPeriod string        `json:"billing_period"` // "month", "quarter", "year"
	IsMostPopular bool          `json:"is_most_popular"`
	Limits        PlanLimitsDTO `json:"limits"`
	Features      []FeatureDTO  `json:"features"`
}

type PlanLimitsDTO struct {
	MaxMealPlans   int `json:"max_meal_plans"`   // -1 = unlimited
	MaxWeeklyPlans int `json:"max_weekly_plans"` // -1 = unlimited
	MaxGenerations int `json:"max_generations"`  // -1 = unlimited
	MaxRecipes     int `json:"max_recipes"`      // -1 = unlimited
}

type FeatureDTO struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	IsEnabled bool   `json:"is_enabled"`
}

// UsageLimit represents a single limit status
type UsageLimit struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"` // -1 = unlimited
	Remaining int  `json:"remaining"`
	CanUse    bool `json:"can_use"`
}

// PlanInfo describes the resolved plan in status payloads
type PlanInfo struct {
	Id          *uuid.UUID `json:"id,omitempty"` // nil for the free tier
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	IsPremium   bool       `json:"is_premium"`
	SupportTier string     `json:"support_tier"`
}

// TimeRemaining is structured so clients can localize formatting themselves.
type TimeRemaining struct {
	ExpiresAt time.Time `json:"expires_at"`
	Days      int       `json:"days"`
	Hours     int       `json:"hours"`
}

// SubscriptionStatusResponse is returned by GET /api/subscription/status
type SubscriptionStatusResponse struct {
	Plan             PlanInfo          `json:"plan"`
	Features         map[string]bool   `json:"features"`
	Limits           map[string]int    `json:"limits"` // -1 = unlimited
	Usage            UsageResponse     `json:"usage"`
	MealPlans        UsageLimit        `json:"meal_plans"`
	WeeklyPlans      UsageLimit        `json:"weekly_plans"`
	Generations      UsageLimit        `json:"generations"`
	TimeRemaining    *TimeRemaining    `json:"time_remaining,omitempty"`
	IsExpiringSoon   bool              `json:"is_expiring_soon"`
	UpgradeAvailable bool              `json:"upgrade_available"`
}

type UsageResponse struct {
	MealPlanCount    int `json:"meal_plan_count"`
	TotalGenerations int `json:"total_generations"`
	WeeklyPlansCount int `json:"weekly_plans_count"`
}

// LimitType constants for error handling
const (
	LimitTypeMealPlans   = "meal_plans"
	LimitTypeWeeklyPlans = "weekly_plans"
	LimitTypeGenerations = "generations"
	LimitTypeRecipes     = "recipes"
)

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	LimitType string `json:"limit_type"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
}

func (e *LimitExceededError) Error() string {
	return "plan limit exceeded: " + e.LimitType
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	LimitType        string `json:"limit_type"`
	Limit            int    `json:"limit"`
	Used             int    `json:"used"`
	ShowModalPricing bool   `json:"show_modal_pricing"`
}
