package planner

import (
	"errors"
	"testing"
)

func TestParseWeeklyPlan(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "bare json array",
			raw:       `[{"name":"Oatmeal","type":"breakfast","calories":400,"day":0}]`,
			wantCount: 1,
		},
		{
			name: "fenced json",
			raw: "Here is your plan:\n```json\n" +
				`[{"name":"Oatmeal","type":"breakfast","calories":400,"day":0},` +
				`{"name":"Salad","type":"lunch","calories":600,"day":0}]` +
				"\n```\nEnjoy!",
			wantCount: 2,
		},
		{
			name:      "prose around array",
			raw:       `Sure! [{"name":"Soup","type":"dinner","calories":500,"day":2}] Hope that helps.`,
			wantCount: 1,
		},
		{
			name:    "plain prose",
			raw:     "I cannot generate a meal plan right now.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `[{"name":"Oatmeal","type":`,
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name: "bad rows dropped, good rows kept",
			raw: `[{"name":"Oatmeal","type":"breakfast","calories":400,"day":0},` +
				`{"name":"","type":"lunch","calories":500,"day":0},` +
				`{"name":"Mystery","type":"brunch","calories":500,"day":0},` +
				`{"name":"Late","type":"dinner","calories":500,"day":9}]`,
			wantCount: 1,
		},
		{
			name:    "all rows invalid",
			raw:     `[{"name":"","type":"breakfast","calories":100,"day":0}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meals, err := ParseWeeklyPlan(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparseable) {
					t.Errorf("err = %v, want ErrUnparseable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(meals) != tt.wantCount {
				t.Errorf("parsed %d meals, want %d", len(meals), tt.wantCount)
			}
		})
	}
}

func TestParseWeeklyPlanNormalizesType(t *testing.T) {
	meals, err := ParseWeeklyPlan(`[{"name":"Eggs","type":" BREAKFAST ","calories":300,"day":0}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meals[0].Type != "breakfast" {
		t.Errorf("type = %q, want breakfast", meals[0].Type)
	}
}

func TestParseSingleMeal(t *testing.T) {
	meal, err := ParseSingleMeal("```json\n" +
		`{"name":"Grilled chicken","type":"lunch","calories":650,"protein":45,"carbs":50,"fat":20}` +
		"\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meal.Name != "Grilled chicken" || meal.Calories != 650 {
		t.Errorf("parsed %+v, want grilled chicken at 650 kcal", meal)
	}

	if _, err := ParseSingleMeal("no json here"); !errors.Is(err, ErrUnparseable) {
		t.Errorf("prose err = %v, want ErrUnparseable", err)
	}

	if _, err := ParseSingleMeal(`{"name":"X","type":"second-dinner","calories":100}`); !errors.Is(err, ErrUnparseable) {
		t.Errorf("invalid type err = %v, want ErrUnparseable", err)
	}
}
