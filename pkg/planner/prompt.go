// Package planner builds generation prompts from a nutrition profile,
// parses model output leniently, and supplies a deterministic static
// fallback plan when the model is unreachable or returns garbage.
package planner

import (
	"fmt"
	"strings"

	"nutriplan-be/internal/entity"
)

// RequiredProfileFields returns the profile fields that must be set before
// a prompt can be built. Empty result means the profile is complete.
func RequiredProfileFields(p *entity.UserProfile) []string {
	var missing []string
	if p == nil {
		return []string{"age", "gender", "height_cm", "weight_kg", "activity_level", "goal"}
	}
	if p.Age <= 0 {
		missing = append(missing, "age")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if p.HeightCm <= 0 {
		missing = append(missing, "height_cm")
	}
	if p.WeightKg <= 0 {
		missing = append(missing, "weight_kg")
	}
	if p.ActivityLevel == "" {
		missing = append(missing, "activity_level")
	}
	if p.Goal == "" {
		missing = append(missing, "goal")
	}
	return missing
}

// DailyCalories returns the profile's explicit calorie target, or a
// Mifflin-St Jeor estimate adjusted for activity and goal.
func DailyCalories(p *entity.UserProfile) int {
	if p.DailyCalories > 0 {
		return p.DailyCalories
	}

	// Basal metabolic rate
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == entity.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor := 1.2
	switch p.ActivityLevel {
	case entity.ActivityLight:
		factor = 1.375
	case entity.ActivityModerate:
		factor = 1.55
	case entity.ActivityHigh:
		factor = 1.725
	}
	total := bmr * factor

	switch p.Goal {
	case entity.GoalLoseWeight:
		total -= 400
	case entity.GoalGainMuscle:
		total += 300
	}

	if total < 1200 {
		total = 1200
	}
	return int(total)
}

// BuildWeeklyPrompt renders the generation request for a full 7-day plan.
func BuildWeeklyPrompt(p *entity.UserProfile) string {
	var b strings.Builder
	b.WriteString("You are a nutrition planner. Create a 7-day meal plan as JSON.\n")
	fmt.Fprintf(&b, "Profile: age %d, gender %s, height %.0f cm, weight %.0f kg, activity %s, goal %s.\n",
		p.Age, p.Gender, p.HeightCm, p.WeightKg, p.ActivityLevel, p.Goal)
	fmt.Fprintf(&b, "Daily calorie target: %d kcal.\n", DailyCalories(p))
	if p.DietType != "" {
		fmt.Fprintf(&b, "Diet type: %s.\n", p.DietType)
	}
	if len(p.Allergies) > 0 {
		fmt.Fprintf(&b, "Strictly exclude: %s.\n", strings.Join(p.Allergies, ", "))
	}
	b.WriteString(`Respond with ONLY a JSON array, no prose. Each element:
{"name": string, "type": "breakfast"|"lunch"|"dinner"|"snack", "calories": int, "protein": number, "carbs": number, "fat": number, "day": 0-6}
Produce 4 meals per day (breakfast, lunch, dinner, snack) for days 0 through 6.`)
	return b.String()
}

// BuildMealPrompt renders the request for a single meal suggestion.
func BuildMealPrompt(p *entity.UserProfile, mealType entity.MealType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest one %s for this person as JSON.\n", mealType)
	fmt.Fprintf(&b, "Profile: age %d, gender %s, goal %s, daily target %d kcal.\n",
		p.Age, p.Gender, p.Goal, DailyCalories(p))
	if p.DietType != "" {
		fmt.Fprintf(&b, "Diet type: %s.\n", p.DietType)
	}
	if len(p.Allergies) > 0 {
		fmt.Fprintf(&b, "Strictly exclude: %s.\n", strings.Join(p.Allergies, ", "))
	}
	b.WriteString(`Respond with ONLY one JSON object, no prose:
{"name": string, "type": string, "calories": int, "protein": number, "carbs": number, "fat": number}`)
	return b.String()
}
