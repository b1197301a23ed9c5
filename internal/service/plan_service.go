// FILE: internal/service/plan_service.go
// Public catalog endpoints. The catalog changes rarely, so responses are
// held in an in-process cache; subscription state itself is never cached.
package service

import (
	"context"
	"fmt"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

type IPlanService interface {
	GetAllActivePlansWithFeatures(ctx context.Context) ([]*dto.PlanWithFeaturesResponse, error)
	InvalidateCache()
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

const planCacheKey = "active_plans"

func NewPlanService(uowFactory unitofwork.RepositoryFactory) IPlanService {
	return &planService{
		uowFactory: uowFactory,
		cache:      gocache.New(10*time.Minute, 30*time.Minute),
	}
}

func (s *planService) GetAllActivePlansWithFeatures(ctx context.Context) ([]*dto.PlanWithFeaturesResponse, error) {
	if cached, found := s.cache.Get(planCacheKey); found {
		return cached.([]*dto.PlanWithFeaturesResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.ActivePlansOnly{},
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PlanWithFeaturesResponse, 0, len(plans))
	for _, plan := range plans {
		features := []dto.FeatureDTO{
			{Key: "ai_recommendations", Text: "AI meal recommendations", IsEnabled: plan.AiRecommendations},
			{Key: "analytics", Text: "Nutrition analytics", IsEnabled: plan.Analytics},
			{Key: "achievements", Text: "Achievements", IsEnabled: plan.Achievements},
			{Key: "support", Text: fmt.Sprintf("%s support", plan.SupportTier), IsEnabled: true},
		}

		result = append(result, &dto.PlanWithFeaturesResponse{
			Id:            plan.Id,
			Name:          plan.Name,
			Slug:          plan.Slug,
			Tagline:       plan.Tagline,
			Price:         plan.Price,
			Currency:      plan.Currency,
			BillingPeriod: billingPeriod(plan.MonthsPerTerm),
			IsMostPopular: plan.IsMostPopular,
			Limits: dto.PlanLimitsDTO{
				MaxMealPlans:   plan.MaxMealPlans,
				MaxWeeklyPlans: plan.MaxWeeklyPlans,
				MaxGenerations: plan.MaxGenerations,
				MaxRecipes:     plan.MaxRecipes,
			},
			Features: features,
		})
	}

	s.cache.Set(planCacheKey, result, gocache.DefaultExpiration)
	return result, nil
}

func (s *planService) InvalidateCache() {
	s.cache.Delete(planCacheKey)
}

func billingPeriod(monthsPerTerm int) string {
	switch monthsPerTerm {
	case 12:
		return "year"
	case 3:
		return "quarter"
	default:
		return "month"
	}
}
