// FILE: internal/model/usage_model.go
// Counters live in their own row (unique per user) so increments can be done
// with server-side arithmetic instead of read-modify-write from the client.
package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageStats struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	MealPlanCount    int       `gorm:"default:0"`
	TotalGenerations int       `gorm:"default:0"`
	WeeklyPlansCount int       `gorm:"default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (UsageStats) TableName() string {
	return "usage_stats"
}
