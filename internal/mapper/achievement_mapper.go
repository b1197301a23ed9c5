package mapper

import (
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/model"
)

type AchievementMapper struct{}

func NewAchievementMapper() *AchievementMapper {
	return &AchievementMapper{}
}

func (m *AchievementMapper) ToEntity(a *model.Achievement) *entity.Achievement {
	if a == nil {
		return nil
	}
	return &entity.Achievement{
		Id:          a.Id,
		Key:         a.Key,
		Name:        a.Name,
		Description: a.Description,
		EventType:   a.EventType,
		Threshold:   a.Threshold,
		IsActive:    a.IsActive,
		SortOrder:   a.SortOrder,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *AchievementMapper) ToModel(a *entity.Achievement) *model.Achievement {
	if a == nil {
		return nil
	}
	return &model.Achievement{
		Id:          a.Id,
		Key:         a.Key,
		Name:        a.Name,
		Description: a.Description,
		EventType:   a.EventType,
		Threshold:   a.Threshold,
		IsActive:    a.IsActive,
		SortOrder:   a.SortOrder,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *AchievementMapper) ToEntities(achievements []*model.Achievement) []*entity.Achievement {
	entities := make([]*entity.Achievement, 0, len(achievements))
	for _, a := range achievements {
		entities = append(entities, m.ToEntity(a))
	}
	return entities
}

func (m *AchievementMapper) UserAchievementToEntity(a *model.UserAchievement) *entity.UserAchievement {
	if a == nil {
		return nil
	}
	return &entity.UserAchievement{
		Id:            a.Id,
		UserId:        a.UserId,
		AchievementId: a.AchievementId,
		UnlockedAt:    a.UnlockedAt,
	}
}

func (m *AchievementMapper) UserAchievementsToEntities(achievements []*model.UserAchievement) []*entity.UserAchievement {
	entities := make([]*entity.UserAchievement, 0, len(achievements))
	for _, a := range achievements {
		entities = append(entities, m.UserAchievementToEntity(a))
	}
	return entities
}

func (m *AchievementMapper) UserAchievementToModel(a *entity.UserAchievement) *model.UserAchievement {
	if a == nil {
		return nil
	}
	return &model.UserAchievement{
		Id:            a.Id,
		UserId:        a.UserId,
		AchievementId: a.AchievementId,
		UnlockedAt:    a.UnlockedAt,
	}
}
