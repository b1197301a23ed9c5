package mapper

import (
	"encoding/json"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/model"

	"gorm.io/datatypes"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:                p.Id,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Tagline:           p.Tagline,
		Price:             p.Price,
		Currency:          p.Currency,
		TaxRate:           p.TaxRate,
		MonthsPerTerm:     p.MonthsPerTerm,
		MaxMealPlans:      p.MaxMealPlans,
		MaxWeeklyPlans:    p.MaxWeeklyPlans,
		MaxGenerations:    p.MaxGenerations,
		MaxRecipes:        p.MaxRecipes,
		AiRecommendations: p.AiRecommendations,
		Analytics:         p.Analytics,
		Achievements:      p.Achievements,
		SupportTier:       entity.SupportTier(p.SupportTier),
		DietTypes:         jsonToStrings(p.DietTypes),
		IsMostPopular:     p.IsMostPopular,
		IsActive:          p.IsActive,
		SortOrder:         p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:                p.Id,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Tagline:           p.Tagline,
		Price:             p.Price,
		Currency:          p.Currency,
		TaxRate:           p.TaxRate,
		MonthsPerTerm:     p.MonthsPerTerm,
		MaxMealPlans:      p.MaxMealPlans,
		MaxWeeklyPlans:    p.MaxWeeklyPlans,
		MaxGenerations:    p.MaxGenerations,
		MaxRecipes:        p.MaxRecipes,
		AiRecommendations: p.AiRecommendations,
		Analytics:         p.Analytics,
		Achievements:      p.Achievements,
		SupportTier:       string(p.SupportTier),
		DietTypes:         stringsToJSON(p.DietTypes),
		IsMostPopular:     p.IsMostPopular,
		IsActive:          p.IsActive,
		SortOrder:         p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlansToEntities(plans []*model.SubscriptionPlan) []*entity.SubscriptionPlan {
	entities := make([]*entity.SubscriptionPlan, 0, len(plans))
	for _, p := range plans {
		entities = append(entities, m.PlanToEntity(p))
	}
	return entities
}

func (m *SubscriptionMapper) UserSubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		StartedAt:             s.StartedAt,
		ExpiresAt:             s.ExpiresAt,
		Amount:                s.Amount,
		Currency:              s.Currency,
		IsTest:                s.IsTest,
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) UserSubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		PaymentStatus:         string(s.PaymentStatus),
		StartedAt:             s.StartedAt,
		ExpiresAt:             s.ExpiresAt,
		Amount:                s.Amount,
		Currency:              s.Currency,
		IsTest:                s.IsTest,
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) UserSubscriptionsToEntities(subs []*model.UserSubscription) []*entity.UserSubscription {
	entities := make([]*entity.UserSubscription, 0, len(subs))
	for _, s := range subs {
		entities = append(entities, m.UserSubscriptionToEntity(s))
	}
	return entities
}

func (m *SubscriptionMapper) PaymentRecordToEntity(p *model.PaymentRecord) *entity.PaymentRecord {
	if p == nil {
		return nil
	}
	return &entity.PaymentRecord{
		Id:                   p.Id,
		UserId:               p.UserId,
		OrderId:              p.OrderId,
		Amount:               p.Amount,
		Currency:             p.Currency,
		Status:               entity.PaymentStatus(p.Status),
		IsTest:               p.IsTest,
		RawTransactionStatus: p.RawTransactionStatus,
		CreatedAt:            p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PaymentRecordToModel(p *entity.PaymentRecord) *model.PaymentRecord {
	if p == nil {
		return nil
	}
	return &model.PaymentRecord{
		Id:                   p.Id,
		UserId:               p.UserId,
		OrderId:              p.OrderId,
		Amount:               p.Amount,
		Currency:             p.Currency,
		Status:               string(p.Status),
		IsTest:               p.IsTest,
		RawTransactionStatus: p.RawTransactionStatus,
		CreatedAt:            p.CreatedAt,
	}
}

func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return raw
}
