// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Profile DTOs ---

type UpdateProfileRequest struct {
	Age           *int     `json:"age,omitempty" validate:"omitempty,gt=0,lt=130"`
	Gender        *string  `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	HeightCm      *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	WeightKg      *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	ActivityLevel *string  `json:"activity_level,omitempty" validate:"omitempty,oneof=sedentary light moderate high"`
	Goal          *string  `json:"goal,omitempty" validate:"omitempty,oneof=lose_weight maintain_weight gain_muscle"`
	DietType      *string  `json:"diet_type,omitempty"`
	Allergies     []string `json:"allergies,omitempty"`
	DailyCalories *int     `json:"daily_calories,omitempty" validate:"omitempty,gte=0"`
}

type ProfileResponse struct {
	Id            uuid.UUID `json:"id"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	HeightCm      float64   `json:"height_cm"`
	WeightKg      float64   `json:"weight_kg"`
	ActivityLevel string    `json:"activity_level"`
	Goal          string    `json:"goal"`
	DietType      string    `json:"diet_type"`
	Allergies     []string  `json:"allergies"`
	DailyCalories int       `json:"daily_calories"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// --- Settings DTOs ---

type UpdateSettingsRequest struct {
	Units  *string                `json:"units,omitempty" validate:"omitempty,oneof=metric imperial"`
	Locale *string                `json:"locale,omitempty"`
	Prefs  map[string]interface{} `json:"prefs,omitempty"`
}

type SettingsResponse struct {
	Units     string                 `json:"units"`
	Locale    string                 `json:"locale"`
	Prefs     map[string]interface{} `json:"prefs"`
	UpdatedAt time.Time              `json:"updated_at"`
}
