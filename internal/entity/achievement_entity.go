// FILE: internal/entity/achievement_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is a row in the master catalog. Unlock rules key off EventType
// and Threshold (e.g. MEAL_LOGGED x10).
type Achievement struct {
	Id          uuid.UUID
	Key         string
	Name        string
	Description string
	EventType   string
	Threshold   int
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
}

type UserAchievement struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	AchievementId uuid.UUID
	UnlockedAt    time.Time
}
