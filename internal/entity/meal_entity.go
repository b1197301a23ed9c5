// FILE: internal/entity/meal_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

type PlanSource string

const (
	PlanSourceGenerated PlanSource = "generated"
	PlanSourceManual    PlanSource = "manual"
	PlanSourceFallback  PlanSource = "fallback"
)

// Meal belongs to exactly one user. The UUID is minted at creation time and is
// the only identifier; there is no secondary client-id lookup.
type Meal struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Type      MealType
	Calories  int
	Protein   float64
	Carbs     float64
	Fat       float64
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// MealPlanSummary is the single per-user summary row upserted whenever a full
// plan replaces the meal set.
type MealPlanSummary struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	WeekStart     time.Time
	MealCount     int
	TotalCalories int
	Source        PlanSource
	GeneratedAt   time.Time
	UpdatedAt     time.Time
}

// MealEmbedding is the pgvector row built asynchronously for recommendations.
type MealEmbedding struct {
	Id        uuid.UUID
	MealId    uuid.UUID
	UserId    uuid.UUID
	Document  string
	Vector    []float32
	CreatedAt time.Time
}
