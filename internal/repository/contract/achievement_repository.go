package contract

import (
	"context"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *entity.Achievement) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Achievement, error)
	FindAllByEventType(ctx context.Context, eventType string) ([]*entity.Achievement, error)

	// Unlock is idempotent: unlocking an already-held achievement is a no-op
	// and reports unlocked=false.
	Unlock(ctx context.Context, userId, achievementId uuid.UUID) (bool, error)
	FindUnlocked(ctx context.Context, userId uuid.UUID) ([]*entity.UserAchievement, error)
}
