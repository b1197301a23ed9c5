package planner

import (
	"testing"

	"nutriplan-be/internal/entity"
)

func TestFallbackCalorieSplit(t *testing.T) {
	f := NewFallback(1)
	daily := 2000

	// 25/35/30/10 split of the daily target.
	tests := []struct {
		mealType entity.MealType
		want     int
	}{
		{entity.MealTypeBreakfast, 500},
		{entity.MealTypeLunch, 700},
		{entity.MealTypeDinner, 600},
		{entity.MealTypeSnack, 200},
	}

	for _, tt := range tests {
		t.Run(string(tt.mealType), func(t *testing.T) {
			m := f.SingleMeal(tt.mealType, daily)
			if m.Calories != tt.want {
				t.Errorf("%s calories = %d, want %d", tt.mealType, m.Calories, tt.want)
			}
			if m.Name == "" {
				t.Error("fallback meal must have a dish name")
			}
			if m.Type != string(tt.mealType) {
				t.Errorf("meal type = %q, want %q", m.Type, tt.mealType)
			}
		})
	}
}

func TestFallbackMacros(t *testing.T) {
	// 30/40/30 protein/carb/fat split by calories, at 4/4/9 kcal per gram.
	m := NewFallback(1).SingleMeal(entity.MealTypeBreakfast, 2000)

	if m.Protein != 500*0.30/4 {
		t.Errorf("protein = %v, want %v", m.Protein, 500*0.30/4)
	}
	if m.Carbs != 500*0.40/4 {
		t.Errorf("carbs = %v, want %v", m.Carbs, 500*0.40/4)
	}
	if m.Fat != 500*0.30/9 {
		t.Errorf("fat = %v, want %v", m.Fat, 500*0.30/9)
	}
}

func TestFallbackWeeklyPlanShape(t *testing.T) {
	plan := NewFallback(42).WeeklyPlan(1800)

	if len(plan) != 28 {
		t.Fatalf("weekly plan has %d meals, want 28 (7 days x 4 types)", len(plan))
	}

	perDay := map[int]map[string]int{}
	total := 0
	for _, m := range plan {
		if m.Day < 0 || m.Day > 6 {
			t.Errorf("meal day %d outside 0..6", m.Day)
		}
		if perDay[m.Day] == nil {
			perDay[m.Day] = map[string]int{}
		}
		perDay[m.Day][m.Type]++
		total += m.Calories
	}

	for day, types := range perDay {
		for _, want := range []string{"breakfast", "lunch", "dinner", "snack"} {
			if types[want] != 1 {
				t.Errorf("day %d has %d %s meals, want 1", day, types[want], want)
			}
		}
	}

	// 450+630+540+180 per day, times 7.
	if total != 1800*7 {
		t.Errorf("weekly calories = %d, want %d", total, 1800*7)
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	a := NewFallback(7).WeeklyPlan(2000)
	b := NewFallback(7).WeeklyPlan(2000)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at meal %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := NewFallback(8).WeeklyPlan(2000)
	same := true
	for i := range a {
		if a[i].Name != c[i].Name {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical dish sequences")
	}
}
