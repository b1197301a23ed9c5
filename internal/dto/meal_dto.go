// FILE: internal/dto/meal_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMealRequest struct {
	Name     string    `json:"name" validate:"required"`
	Type     string    `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	Calories int       `json:"calories" validate:"gte=0"`
	Protein  float64   `json:"protein" validate:"gte=0"`
	Carbs    float64   `json:"carbs" validate:"gte=0"`
	Fat      float64   `json:"fat" validate:"gte=0"`
	Date     time.Time `json:"date"`
}

type UpdateMealRequest struct {
	Name     *string    `json:"name,omitempty"`
	Type     *string    `json:"type,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Calories *int       `json:"calories,omitempty" validate:"omitempty,gte=0"`
	Protein  *float64   `json:"protein,omitempty" validate:"omitempty,gte=0"`
	Carbs    *float64   `json:"carbs,omitempty" validate:"omitempty,gte=0"`
	Fat      *float64   `json:"fat,omitempty" validate:"omitempty,gte=0"`
	Date     *time.Time `json:"date,omitempty"`
}

type MealResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Calories  int        `json:"calories"`
	Protein   float64    `json:"protein"`
	Carbs     float64    `json:"carbs"`
	Fat       float64    `json:"fat"`
	Date      time.Time  `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ReplacePlanRequest swaps the user's entire meal set in one transaction.
type ReplacePlanRequest struct {
	Meals     []CreateMealRequest `json:"meals" validate:"required,min=1,dive"`
	WeekStart time.Time           `json:"week_start"`
	Source    string              `json:"source" validate:"omitempty,oneof=generated manual fallback"`
}

type MealListResponse struct {
	Meals []MealResponse `json:"meals"`
	Total int            `json:"total"`
}

// PublishEmbedMealMessage is the payload handed to the embedding worker.
type PublishEmbedMealMessage struct {
	MealId uuid.UUID `json:"meal_id"`
}

type MealPlanSummaryResponse struct {
	WeekStart     time.Time `json:"week_start"`
	MealCount     int       `json:"meal_count"`
	TotalCalories int       `json:"total_calories"`
	Source        string    `json:"source"`
	GeneratedAt   time.Time `json:"generated_at"`
}
