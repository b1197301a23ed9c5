package contract

import (
	"context"

	"nutriplan-be/internal/entity"

	"github.com/google/uuid"
)

// UsageRepository owns the per-user counter row. Increments are executed as
// server-side arithmetic in a single UPDATE so concurrent generations never
// lose a count.
type UsageRepository interface {
	// EnsureExists inserts the zero-valued row if the user has none yet.
	// Existing counters are left untouched.
	EnsureExists(ctx context.Context, userId uuid.UUID) error
	Find(ctx context.Context, userId uuid.UUID) (*entity.UsageStats, error)

	IncrementMealPlanCount(ctx context.Context, userId uuid.UUID, delta int) error
	IncrementTotalGenerations(ctx context.Context, userId uuid.UUID, delta int) error
	IncrementWeeklyPlansCount(ctx context.Context, userId uuid.UUID, delta int) error
}
