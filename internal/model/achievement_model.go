package model

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	EventType   string    `gorm:"type:varchar(100);not null;index"`
	Threshold   int       `gorm:"default:1"`
	IsActive    bool      `gorm:"default:true"`
	SortOrder   int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type UserAchievement struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_achievement,unique"`
	AchievementId uuid.UUID `gorm:"type:uuid;not null;index:idx_user_achievement,unique"`
	UnlockedAt    time.Time `gorm:"autoCreateTime"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
