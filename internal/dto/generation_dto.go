// FILE: internal/dto/generation_dto.go
package dto

import "time"

// GenerateMealRequest asks for a single meal suggestion.
type GenerateMealRequest struct {
	Type string    `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	Date time.Time `json:"date"`
}

// GenerateWeeklyPlanRequest asks for a full 7-day plan.
type GenerateWeeklyPlanRequest struct {
	WeekStart time.Time `json:"week_start"`
	Replace   bool      `json:"replace"` // replace the current plan on success
}

type GeneratedMealDTO struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Day      int     `json:"day"` // 0-6 offset from week start
}

type GenerateMealResponse struct {
	Meal     MealResponse `json:"meal"`
	Source   string       `json:"source"` // "generated" | "fallback"
	Fallback bool         `json:"fallback"`
}

type GenerateWeeklyPlanResponse struct {
	Meals    []MealResponse          `json:"meals"`
	Source   string                  `json:"source"`
	Fallback bool                    `json:"fallback"`
	Summary  MealPlanSummaryResponse `json:"summary"`
}

// MissingProfileFieldsError is returned when generation is requested before
// the nutrition profile is complete enough to build a prompt.
type MissingProfileFieldsError struct {
	Fields []string `json:"fields"`
}

func (e *MissingProfileFieldsError) Error() string {
	return "profile incomplete for plan generation"
}
