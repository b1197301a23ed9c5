// FILE: internal/entity/usage_entity.go
// Per-user lifetime usage counters. All three are monotonically non-decreasing:
// a limit is consumed at generation time and never released by deleting content.
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UsageStats struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	MealPlanCount    int // saved full plans
	TotalGenerations int // all generation events, full plans and single meals
	WeeklyPlansCount int // full weekly-plan generations, compared against MaxWeeklyPlans
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
