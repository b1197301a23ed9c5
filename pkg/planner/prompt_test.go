package planner

import (
	"strings"
	"testing"

	"nutriplan-be/internal/entity"
)

func completeProfile() *entity.UserProfile {
	return &entity.UserProfile{
		Age:           30,
		Gender:        entity.GenderMale,
		HeightCm:      180,
		WeightKg:      80,
		ActivityLevel: entity.ActivityModerate,
		Goal:          entity.GoalMaintainWeight,
	}
}

func TestRequiredProfileFields(t *testing.T) {
	if missing := RequiredProfileFields(completeProfile()); len(missing) != 0 {
		t.Errorf("complete profile reported missing fields: %v", missing)
	}

	if missing := RequiredProfileFields(nil); len(missing) != 6 {
		t.Errorf("nil profile reported %d missing fields, want 6", len(missing))
	}

	p := completeProfile()
	p.Age = 0
	p.Goal = ""
	missing := RequiredProfileFields(p)
	if len(missing) != 2 {
		t.Fatalf("missing = %v, want [age goal]", missing)
	}
	if missing[0] != "age" || missing[1] != "goal" {
		t.Errorf("missing = %v, want [age goal]", missing)
	}
}

func TestDailyCalories(t *testing.T) {
	// Explicit target wins over any estimate.
	p := completeProfile()
	p.DailyCalories = 2500
	if got := DailyCalories(p); got != 2500 {
		t.Errorf("explicit target = %d, want 2500", got)
	}

	// Mifflin-St Jeor for the reference profile:
	// 10*80 + 6.25*180 - 5*30 + 5 = 1780, * 1.55 = 2759
	if got := DailyCalories(completeProfile()); got != 2759 {
		t.Errorf("estimated target = %d, want 2759", got)
	}

	// Weight loss subtracts, muscle gain adds.
	lose := completeProfile()
	lose.Goal = entity.GoalLoseWeight
	gain := completeProfile()
	gain.Goal = entity.GoalGainMuscle
	if DailyCalories(lose) != 2359 || DailyCalories(gain) != 3059 {
		t.Errorf("goal adjustments = %d/%d, want 2359/3059",
			DailyCalories(lose), DailyCalories(gain))
	}

	// Estimates never drop below the floor.
	tiny := &entity.UserProfile{
		Age: 90, Gender: entity.GenderFemale, HeightCm: 140, WeightKg: 35,
		ActivityLevel: entity.ActivitySedentary, Goal: entity.GoalLoseWeight,
	}
	if got := DailyCalories(tiny); got != 1200 {
		t.Errorf("floored target = %d, want 1200", got)
	}
}

func TestBuildWeeklyPromptIncludesConstraints(t *testing.T) {
	p := completeProfile()
	p.DietType = "vegetarian"
	p.Allergies = []string{"peanuts", "shellfish"}

	prompt := BuildWeeklyPrompt(p)

	for _, want := range []string{"7-day", "vegetarian", "peanuts, shellfish", "JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("weekly prompt missing %q", want)
		}
	}
}

func TestBuildMealPromptNamesType(t *testing.T) {
	prompt := BuildMealPrompt(completeProfile(), entity.MealTypeDinner)
	if !strings.Contains(prompt, "dinner") {
		t.Error("meal prompt does not name the requested meal type")
	}
	if !strings.Contains(prompt, "JSON object") {
		t.Error("meal prompt does not demand a JSON object")
	}
}
