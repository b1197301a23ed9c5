// FILE: internal/service/analytics_service.go
package service

import (
	"context"
	"sort"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/entitlement"
	"nutriplan-be/pkg/planner"

	"github.com/google/uuid"
)

type IAnalyticsService interface {
	// NutritionRange aggregates the user's meals per day over [from, to].
	NutritionRange(ctx context.Context, userId uuid.UUID, from, to time.Time) (*dto.NutritionAnalyticsResponse, error)
}

type analyticsService struct {
	uowFactory   unitofwork.RepositoryFactory
	entitlements IEntitlementService
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, entitlements IEntitlementService) IAnalyticsService {
	return &analyticsService{
		uowFactory:   uowFactory,
		entitlements: entitlements,
	}
}

func (s *analyticsService) NutritionRange(ctx context.Context, userId uuid.UUID, from, to time.Time) (*dto.NutritionAnalyticsResponse, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if !bundle.Has(entitlement.FeatureAnalytics) {
		return nil, ErrFeatureLocked
	}

	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	meals, err := uow.MealRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.DateBetween{Field: "date", From: from, To: to},
		specification.OrderBy{Field: "date", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*dto.DailyNutrition{}
	for _, m := range meals {
		day := m.Date.Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		agg, ok := byDay[key]
		if !ok {
			agg = &dto.DailyNutrition{Date: day}
			byDay[key] = agg
		}
		agg.Calories += m.Calories
		agg.Protein += m.Protein
		agg.Carbs += m.Carbs
		agg.Fat += m.Fat
		agg.Meals++
	}

	days := make([]dto.DailyNutrition, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	res := dto.NutritionAnalyticsResponse{
		From: from,
		To:   to,
		Days: days,
	}

	if len(days) > 0 {
		total := 0
		for _, d := range days {
			total += d.Calories
		}
		res.AvgCalories = total / len(days)
	}

	// Days where intake landed within 10% of the profile target
	profile, err := uow.UserRepository().FindProfile(ctx, userId)
	if err == nil && profile != nil {
		target := planner.DailyCalories(profile)
		if target > 0 {
			low := int(float64(target) * 0.9)
			high := int(float64(target) * 1.1)
			for _, d := range days {
				if d.Calories >= low && d.Calories <= high {
					res.TargetHit++
				}
			}
		}
	}

	return &res, nil
}
