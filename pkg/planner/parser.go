package planner

import (
	"encoding/json"
	"errors"
	"strings"
)

// PlannedMeal is the parsed shape of one generated meal.
type PlannedMeal struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Day      int     `json:"day"`
}

var ErrUnparseable = errors.New("model output is not a recognizable plan")

// extractJSON trims prose and markdown fences around the first JSON value.
// Models wrap output in ```json fences or lead with commentary often enough
// that strict unmarshalling alone loses usable plans.
func extractJSON(raw string, open, close byte) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// ParseWeeklyPlan parses model output into a list of planned meals.
func ParseWeeklyPlan(raw string) ([]PlannedMeal, error) {
	payload := extractJSON(raw, '[', ']')
	if payload == "" {
		return nil, ErrUnparseable
	}
	var meals []PlannedMeal
	if err := json.Unmarshal([]byte(payload), &meals); err != nil {
		return nil, ErrUnparseable
	}
	meals = sanitize(meals)
	if len(meals) == 0 {
		return nil, ErrUnparseable
	}
	return meals, nil
}

// ParseSingleMeal parses model output into one planned meal.
func ParseSingleMeal(raw string) (*PlannedMeal, error) {
	payload := extractJSON(raw, '{', '}')
	if payload == "" {
		return nil, ErrUnparseable
	}
	var meal PlannedMeal
	if err := json.Unmarshal([]byte(payload), &meal); err != nil {
		return nil, ErrUnparseable
	}
	cleaned := sanitize([]PlannedMeal{meal})
	if len(cleaned) == 0 {
		return nil, ErrUnparseable
	}
	return &cleaned[0], nil
}

var validTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// sanitize drops entries the model got structurally wrong instead of
// failing the whole plan over one bad row.
func sanitize(meals []PlannedMeal) []PlannedMeal {
	out := make([]PlannedMeal, 0, len(meals))
	for _, m := range meals {
		m.Type = strings.ToLower(strings.TrimSpace(m.Type))
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" || !validTypes[m.Type] {
			continue
		}
		if m.Calories < 0 || m.Day < 0 || m.Day > 6 {
			continue
		}
		out = append(out, m)
	}
	return out
}
