// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type SupportTier string

const (
	// Pending rows exist between checkout and the provider callback.
	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"

	SupportBasic    SupportTier = "basic"
	SupportPriority SupportTier = "priority"
	SupportPremium  SupportTier = "premium"
)

const (
	PlanSlugMonthly   = "monthly"
	PlanSlugQuarterly = "quarterly"
	PlanSlugYearly    = "yearly"
)

// UnlimitedLimit is the catalog sentinel for fields without a cap.
const UnlimitedLimit = -1

type SubscriptionPlan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Tagline       string
	Price         float64
	Currency      string
	TaxRate       float64
	MonthsPerTerm int // 1, 3, 12
	// Limits, -1 = unlimited
	MaxMealPlans   int
	MaxWeeklyPlans int
	MaxGenerations int
	MaxRecipes     int
	// Capabilities
	AiRecommendations bool
	Analytics         bool
	Achievements      bool
	SupportTier       SupportTier
	DietTypes         []string
	// Display Settings
	IsMostPopular bool
	IsActive      bool
	SortOrder     int
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	Status                SubscriptionStatus
	PaymentStatus         PaymentStatus
	StartedAt             time.Time
	ExpiresAt             time.Time
	Amount                float64
	Currency              string
	IsTest                bool
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ActiveAt reports whether the subscription grants access at the given instant.
// Status alone is not sufficient; the expiry must also be in the future.
func (s *UserSubscription) ActiveAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.ExpiresAt.After(now)
}

// PaymentRecord is the audit trail of provider callbacks and simulated payments.
type PaymentRecord struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	OrderId              string
	Amount               float64
	Currency             string
	Status               PaymentStatus
	IsTest               bool
	RawTransactionStatus string
	CreatedAt            time.Time
}
