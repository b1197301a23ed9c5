package mapper

import (
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) ToEntity(s *model.UsageStats) *entity.UsageStats {
	if s == nil {
		return nil
	}
	return &entity.UsageStats{
		Id:               s.Id,
		UserId:           s.UserId,
		MealPlanCount:    s.MealPlanCount,
		TotalGenerations: s.TotalGenerations,
		WeeklyPlansCount: s.WeeklyPlansCount,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *UsageMapper) ToModel(s *entity.UsageStats) *model.UsageStats {
	if s == nil {
		return nil
	}
	return &model.UsageStats{
		Id:               s.Id,
		UserId:           s.UserId,
		MealPlanCount:    s.MealPlanCount,
		TotalGenerations: s.TotalGenerations,
		WeeklyPlansCount: s.WeeklyPlansCount,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
