package planner

import (
	"math/rand"

	"nutriplan-be/internal/entity"
)

// Calorie share per meal type. Sums to 1.
var calorieSplit = map[entity.MealType]float64{
	entity.MealTypeBreakfast: 0.25,
	entity.MealTypeLunch:     0.35,
	entity.MealTypeDinner:    0.30,
	entity.MealTypeSnack:     0.10,
}

// Macro split applied to every fallback meal: 30% protein, 40% carbs,
// 30% fat by calories (4/4/9 kcal per gram).
const (
	proteinShare = 0.30
	carbShare    = 0.40
	fatShare     = 0.30
)

var fallbackDishes = map[entity.MealType][]string{
	entity.MealTypeBreakfast: {
		"Oatmeal with berries and almonds",
		"Greek yogurt with honey and walnuts",
		"Scrambled eggs with whole-grain toast",
		"Cottage cheese pancakes",
		"Avocado toast with poached egg",
	},
	entity.MealTypeLunch: {
		"Grilled chicken with quinoa and vegetables",
		"Salmon bowl with brown rice",
		"Turkey and vegetable stir-fry",
		"Lentil soup with whole-grain bread",
		"Tuna salad with chickpeas",
	},
	entity.MealTypeDinner: {
		"Baked cod with roasted sweet potato",
		"Beef and broccoli with rice",
		"Chicken breast with steamed vegetables",
		"Vegetable curry with tofu",
		"Shrimp pasta with spinach",
	},
	entity.MealTypeSnack: {
		"Apple with peanut butter",
		"Protein shake with banana",
		"Mixed nuts and dried fruit",
		"Carrot sticks with hummus",
		"Rice cakes with cottage cheese",
	},
}

// Fallback generates plans without a model. Deterministic given its seed,
// so tests can pin the dish selection.
type Fallback struct {
	rng *rand.Rand
}

func NewFallback(seed int64) *Fallback {
	return &Fallback{rng: rand.New(rand.NewSource(seed))}
}

func (f *Fallback) meal(mealType entity.MealType, dailyCalories int, day int) PlannedMeal {
	dishes := fallbackDishes[mealType]
	name := dishes[f.rng.Intn(len(dishes))]
	calories := int(float64(dailyCalories) * calorieSplit[mealType])
	return PlannedMeal{
		Name:     name,
		Type:     string(mealType),
		Calories: calories,
		Protein:  float64(calories) * proteinShare / 4,
		Carbs:    float64(calories) * carbShare / 4,
		Fat:      float64(calories) * fatShare / 9,
		Day:      day,
	}
}

// SingleMeal picks one fallback dish of the requested type.
func (f *Fallback) SingleMeal(mealType entity.MealType, dailyCalories int) PlannedMeal {
	return f.meal(mealType, dailyCalories, 0)
}

// WeeklyPlan produces 7 days x 4 meal types of fallback dishes.
func (f *Fallback) WeeklyPlan(dailyCalories int) []PlannedMeal {
	order := []entity.MealType{
		entity.MealTypeBreakfast,
		entity.MealTypeLunch,
		entity.MealTypeDinner,
		entity.MealTypeSnack,
	}
	plan := make([]PlannedMeal, 0, 7*len(order))
	for day := 0; day < 7; day++ {
		for _, t := range order {
			plan = append(plan, f.meal(t, dailyCalories, day))
		}
	}
	return plan
}
