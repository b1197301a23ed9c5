// FILE: internal/service/generation_service.go
package service

import (
	"context"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/events"
	"nutriplan-be/pkg/llm"
	pktNats "nutriplan-be/pkg/nats"
	"nutriplan-be/pkg/planner"

	"github.com/google/uuid"
)

type IGenerationService interface {
	// GenerateWeeklyPlan builds a full 7-day plan. The model output is parsed
	// and sanitized; if the model fails or returns garbage, a deterministic
	// fallback plan is produced instead of an error.
	GenerateWeeklyPlan(ctx context.Context, userId uuid.UUID, req *dto.GenerateWeeklyPlanRequest) (*dto.GenerateWeeklyPlanResponse, error)

	// GenerateMeal produces a single meal suggestion and logs it.
	GenerateMeal(ctx context.Context, userId uuid.UUID, req *dto.GenerateMealRequest) (*dto.GenerateMealResponse, error)
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	subscriptions  ISubscriptionService
	mealService    IMealService
	usage          IUsageService
	llmProvider    llm.LLMProvider
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriptions ISubscriptionService,
	mealService IMealService,
	usage IUsageService,
	llmProvider llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		subscriptions:  subscriptions,
		mealService:    mealService,
		usage:          usage,
		llmProvider:    llmProvider,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// loadCompleteProfile fetches the profile and verifies it carries everything
// prompt building needs. A typed error lists the gaps for the 422 path.
func (s *generationService) loadCompleteProfile(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.UserRepository().FindProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	if missing := planner.RequiredProfileFields(profile); len(missing) > 0 {
		return nil, &dto.MissingProfileFieldsError{Fields: missing}
	}
	return profile, nil
}

func (s *generationService) GenerateWeeklyPlan(ctx context.Context, userId uuid.UUID, req *dto.GenerateWeeklyPlanRequest) (*dto.GenerateWeeklyPlanResponse, error) {
	profile, err := s.loadCompleteProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.CheckCanGenerateWeekly(ctx, userId); err != nil {
		return nil, err
	}

	weekStart := req.WeekStart
	if weekStart.IsZero() {
		weekStart = startOfWeek(time.Now())
	}

	dailyCalories := planner.DailyCalories(profile)
	planned, fallback := s.weeklyFromModel(ctx, profile, dailyCalories, weekStart)

	source := entity.PlanSourceGenerated
	if fallback {
		source = entity.PlanSourceFallback
	}

	mealReqs := make([]dto.CreateMealRequest, 0, len(planned))
	for _, m := range planned {
		mealReqs = append(mealReqs, dto.CreateMealRequest{
			Name:     m.Name,
			Type:     m.Type,
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fat:      m.Fat,
			Date:     weekStart.AddDate(0, 0, m.Day),
		})
	}

	res := dto.GenerateWeeklyPlanResponse{
		Source:   string(source),
		Fallback: fallback,
	}

	if req.Replace {
		replaced, err := s.mealService.ReplacePlan(ctx, userId, &dto.ReplacePlanRequest{
			Meals:     mealReqs,
			WeekStart: weekStart,
			Source:    string(source),
		})
		if err != nil {
			return nil, err
		}
		res.Meals = replaced.Meals

		if summary, err := s.mealService.GetSummary(ctx, userId); err == nil && summary != nil {
			res.Summary = *summary
		}
	} else {
		// Preview only: hand the plan back without touching the stored set.
		totalCalories := 0
		for _, m := range mealReqs {
			res.Meals = append(res.Meals, dto.MealResponse{
				Id:       uuid.New(),
				Name:     m.Name,
				Type:     m.Type,
				Calories: m.Calories,
				Protein:  m.Protein,
				Carbs:    m.Carbs,
				Fat:      m.Fat,
				Date:     m.Date,
			})
			totalCalories += m.Calories
		}
		res.Summary = dto.MealPlanSummaryResponse{
			WeekStart:     weekStart,
			MealCount:     len(mealReqs),
			TotalCalories: totalCalories,
			Source:        string(source),
			GeneratedAt:   time.Now(),
		}
	}

	// The plan is already saved; a failed counter bump must not undo it.
	if err := s.usage.RecordWeeklyPlan(ctx, userId); err != nil {
		s.logger.Warn("GenerationService", "Failed to record weekly plan usage", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewPlanGenerated(userId.String(), string(source), len(mealReqs))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("GenerationService", "Failed to publish event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err.Error(),
			})
		}
	}

	return &res, nil
}

func (s *generationService) GenerateMeal(ctx context.Context, userId uuid.UUID, req *dto.GenerateMealRequest) (*dto.GenerateMealResponse, error) {
	profile, err := s.loadCompleteProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.CheckCanGenerate(ctx, userId); err != nil {
		return nil, err
	}

	mealType := entity.MealType(req.Type)
	dailyCalories := planner.DailyCalories(profile)
	planned, fallback := s.mealFromModel(ctx, profile, mealType, dailyCalories)

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	created, err := s.mealService.Create(ctx, userId, &dto.CreateMealRequest{
		Name:     planned.Name,
		Type:     planned.Type,
		Calories: planned.Calories,
		Protein:  planned.Protein,
		Carbs:    planned.Carbs,
		Fat:      planned.Fat,
		Date:     date,
	})
	if err != nil {
		return nil, err
	}

	if err := s.usage.RecordGeneration(ctx, userId); err != nil {
		s.logger.Warn("GenerationService", "Failed to record generation usage", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}

	source := entity.PlanSourceGenerated
	if fallback {
		source = entity.PlanSourceFallback
	}

	return &dto.GenerateMealResponse{
		Meal:     *created,
		Source:   string(source),
		Fallback: fallback,
	}, nil
}

// weeklyFromModel asks the LLM for a plan and falls back to the static
// generator when the model errors or the output cannot be parsed.
func (s *generationService) weeklyFromModel(ctx context.Context, profile *entity.UserProfile, dailyCalories int, weekStart time.Time) ([]planner.PlannedMeal, bool) {
	prompt := planner.BuildWeeklyPrompt(profile)
	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err == nil {
		meals, perr := planner.ParseWeeklyPlan(raw)
		if perr == nil && len(meals) > 0 {
			return meals, false
		}
		err = perr
		if err == nil {
			err = planner.ErrUnparseable
		}
	}

	s.logger.Warn("GenerationService", "Model plan unusable, using fallback", map[string]interface{}{
		"user_id": profile.UserId.String(),
		"error":   err.Error(),
	})
	return planner.NewFallback(weekStart.Unix()).WeeklyPlan(dailyCalories), true
}

func (s *generationService) mealFromModel(ctx context.Context, profile *entity.UserProfile, mealType entity.MealType, dailyCalories int) (*planner.PlannedMeal, bool) {
	prompt := planner.BuildMealPrompt(profile, mealType)
	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err == nil {
		meal, perr := planner.ParseSingleMeal(raw)
		if perr == nil {
			return meal, false
		}
		err = perr
	}

	s.logger.Warn("GenerationService", "Model meal unusable, using fallback", map[string]interface{}{
		"user_id": profile.UserId.String(),
		"error":   err.Error(),
	})
	meal := planner.NewFallback(time.Now().Unix()).SingleMeal(mealType, dailyCalories)
	return &meal, true
}

// startOfWeek snaps a time to the preceding Monday at midnight UTC.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
