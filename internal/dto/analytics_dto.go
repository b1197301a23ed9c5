// FILE: internal/dto/analytics_dto.go
package dto

import "time"

// DailyNutrition is one aggregate row of the analytics range query.
type DailyNutrition struct {
	Date     time.Time `json:"date"`
	Calories int       `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Meals    int       `json:"meals"`
}

type NutritionAnalyticsResponse struct {
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	Days        []DailyNutrition `json:"days"`
	AvgCalories int              `json:"avg_calories"`
	TargetHit   int              `json:"target_hit_days"`
}

// RecommendationResponse is the pgvector similarity payload.
type RecommendationResponse struct {
	Meals []MealResponse `json:"meals"`
	Query string         `json:"query"`
}
