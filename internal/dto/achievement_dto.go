// FILE: internal/dto/achievement_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type AchievementResponse struct {
	Id          uuid.UUID  `json:"id"`
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Threshold   int        `json:"threshold"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
	UnlockedNum  int                   `json:"unlocked_count"`
}

// AchievementUnlockedNotification is pushed over the websocket when a
// consumer unlocks something for the user.
type AchievementUnlockedNotification struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
