package entitlement

import (
	"testing"
)

func TestLimitAllows(t *testing.T) {
	tests := []struct {
		name  string
		limit Limit
		used  int
		want  bool
	}{
		{"under cap", 5, 4, true},
		{"at cap", 5, 5, false},
		{"over cap", 5, 9, false},
		{"zero cap", 0, 0, false},
		{"unlimited ignores usage", Unlimited, 1000000, true},
		{"any negative is unlimited", -3, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limit.Allows(tt.used); got != tt.want {
				t.Errorf("Limit(%d).Allows(%d) = %v, want %v", tt.limit, tt.used, got, tt.want)
			}
		})
	}
}

func TestLimitRemaining(t *testing.T) {
	tests := []struct {
		name  string
		limit Limit
		used  int
		want  int
	}{
		{"unused", 5, 0, 5},
		{"partially used", 5, 3, 2},
		{"exhausted", 5, 5, 0},
		{"overshoot floors at zero", 5, 12, 0},
		{"unlimited passes sentinel through", Unlimited, 500, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limit.Remaining(tt.used); got != tt.want {
				t.Errorf("Limit(%d).Remaining(%d) = %d, want %d", tt.limit, tt.used, got, tt.want)
			}
		})
	}
}

func TestLimitInt(t *testing.T) {
	if got := Limit(7).Int(); got != 7 {
		t.Errorf("Limit(7).Int() = %d, want 7", got)
	}
	if got := Limit(-9).Int(); got != -1 {
		t.Errorf("Limit(-9).Int() = %d, want -1 (sentinel is normalized)", got)
	}
	if got := Unlimited.Int(); got != -1 {
		t.Errorf("Unlimited.Int() = %d, want -1", got)
	}
}
