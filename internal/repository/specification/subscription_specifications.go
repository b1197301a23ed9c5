package specification

import (
	"time"

	"nutriplan-be/internal/entity"

	"gorm.io/gorm"
)

// BySlug filters plans by slug
type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// ActivePlansOnly hides retired catalog entries
type ActivePlansOnly struct{}

func (s ActivePlansOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByStatus filters subscriptions by lifecycle status
type ByStatus struct {
	Status entity.SubscriptionStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// NotExpiredAt keeps subscriptions whose term covers the given instant
type NotExpiredAt struct {
	Now time.Time
}

func (s NotExpiredAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Now)
}

// ByOrderId filters payment records by the provider order id
type ByOrderId struct {
	OrderId string
}

func (s ByOrderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderId)
}
