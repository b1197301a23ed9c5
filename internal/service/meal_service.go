// FILE: internal/service/meal_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/events"
	pktNats "nutriplan-be/pkg/nats"

	"github.com/google/uuid"
)

// PlanDelivery pushes a refreshed meal list to a user's connected clients.
// Implemented by the WebSocket hub.
type PlanDelivery interface {
	SendMealPlan(userId uuid.UUID, meals []dto.MealResponse)
}

type IMealService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMealRequest) (*dto.MealResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.MealResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.MealListResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateMealRequest) (*dto.MealResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ClearAll(ctx context.Context, userId uuid.UUID) error

	// ReplacePlan swaps the user's entire meal set atomically: delete all,
	// insert the new set, upsert the plan summary. Partial replaces never
	// survive a failure.
	ReplacePlan(ctx context.Context, userId uuid.UUID, req *dto.ReplacePlanRequest) (*dto.MealListResponse, error)

	GetSummary(ctx context.Context, userId uuid.UUID) (*dto.MealPlanSummaryResponse, error)
}

type mealService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	delivery         PlanDelivery
	logger           logger.ILogger
}

func NewMealService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	delivery PlanDelivery,
	log logger.ILogger,
) IMealService {
	return &mealService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		delivery:         delivery,
		logger:           log,
	}
}

func (s *mealService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMealRequest) (*dto.MealResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	meal := entity.Meal{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Type:      entity.MealType(req.Type),
		Calories:  req.Calories,
		Protein:   req.Protein,
		Carbs:     req.Carbs,
		Fat:       req.Fat,
		Date:      req.Date,
		CreatedAt: time.Now(),
	}

	if err := uow.MealRepository().Create(ctx, &meal); err != nil {
		return nil, err
	}

	s.requestEmbedding(ctx, meal.Id)
	s.publishEvent(ctx, events.NewMealLogged(userId.String(), meal.Id.String(), string(meal.Type)))
	s.pushMealList(ctx, userId)

	res := mealToResponse(&meal)
	return &res, nil
}

func (s *mealService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.MealResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	meal, err := uow.MealRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, nil
	}

	res := mealToResponse(meal)
	return &res, nil
}

func (s *mealService) List(ctx context.Context, userId uuid.UUID) (*dto.MealListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.listWith(ctx, uow, userId)
}

func (s *mealService) listWith(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.MealListResponse, error) {
	meals, err := uow.MealRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "date", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := dto.MealListResponse{
		Meals: make([]dto.MealResponse, 0, len(meals)),
		Total: len(meals),
	}
	for _, m := range meals {
		res.Meals = append(res.Meals, mealToResponse(m))
	}
	return &res, nil
}

func (s *mealService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateMealRequest) (*dto.MealResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	meal, err := uow.MealRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, nil
	}

	if req.Name != nil {
		meal.Name = *req.Name
	}
	if req.Type != nil {
		meal.Type = entity.MealType(*req.Type)
	}
	if req.Calories != nil {
		meal.Calories = *req.Calories
	}
	if req.Protein != nil {
		meal.Protein = *req.Protein
	}
	if req.Carbs != nil {
		meal.Carbs = *req.Carbs
	}
	if req.Fat != nil {
		meal.Fat = *req.Fat
	}
	if req.Date != nil {
		meal.Date = *req.Date
	}
	now := time.Now()
	meal.UpdatedAt = &now

	if err := uow.MealRepository().Update(ctx, meal); err != nil {
		return nil, err
	}

	s.requestEmbedding(ctx, meal.Id)
	s.pushMealList(ctx, userId)

	res := mealToResponse(meal)
	return &res, nil
}

func (s *mealService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	meal, err := uow.MealRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if meal == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MealEmbeddingRepository().DeleteByMealId(ctx, id); err != nil {
		return err
	}
	if err := uow.MealRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.pushMealList(ctx, userId)
	return nil
}

func (s *mealService) ClearAll(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MealEmbeddingRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}
	if err := uow.MealRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.pushMealList(ctx, userId)
	return nil
}

func (s *mealService) ReplacePlan(ctx context.Context, userId uuid.UUID, req *dto.ReplacePlanRequest) (*dto.MealListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	source := entity.PlanSource(req.Source)
	if source == "" {
		source = entity.PlanSourceManual
	}

	now := time.Now()
	meals := make([]*entity.Meal, 0, len(req.Meals))
	totalCalories := 0
	for _, m := range req.Meals {
		meals = append(meals, &entity.Meal{
			Id:        uuid.New(),
			UserId:    userId,
			Name:      m.Name,
			Type:      entity.MealType(m.Type),
			Calories:  m.Calories,
			Protein:   m.Protein,
			Carbs:     m.Carbs,
			Fat:       m.Fat,
			Date:      m.Date,
			CreatedAt: now,
		})
		totalCalories += m.Calories
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MealEmbeddingRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return nil, err
	}
	if err := uow.MealRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return nil, err
	}
	if err := uow.MealRepository().CreateBatch(ctx, meals); err != nil {
		return nil, err
	}

	summary := entity.MealPlanSummary{
		Id:            uuid.New(),
		UserId:        userId,
		WeekStart:     req.WeekStart,
		MealCount:     len(meals),
		TotalCalories: totalCalories,
		Source:        source,
		GeneratedAt:   now,
		UpdatedAt:     now,
	}
	if err := uow.MealRepository().UpsertSummary(ctx, &summary); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	for _, m := range meals {
		s.requestEmbedding(ctx, m.Id)
	}
	s.publishEvent(ctx, events.NewPlanReplaced(userId.String(), len(meals)))
	s.pushMealList(ctx, userId)

	res := dto.MealListResponse{
		Meals: make([]dto.MealResponse, 0, len(meals)),
		Total: len(meals),
	}
	for _, m := range meals {
		res.Meals = append(res.Meals, mealToResponse(m))
	}
	return &res, nil
}

func (s *mealService) GetSummary(ctx context.Context, userId uuid.UUID) (*dto.MealPlanSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.MealRepository().FindSummary(ctx, userId)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, nil
	}

	return &dto.MealPlanSummaryResponse{
		WeekStart:     summary.WeekStart,
		MealCount:     summary.MealCount,
		TotalCalories: summary.TotalCalories,
		Source:        string(summary.Source),
		GeneratedAt:   summary.GeneratedAt,
	}, nil
}

// requestEmbedding queues the meal for async embedding. Failures are logged
// and swallowed; embeddings are best-effort and can be rebuilt.
func (s *mealService) requestEmbedding(ctx context.Context, mealId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishEmbedMealMessage{MealId: mealId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("MealService", "Failed to queue meal embedding", map[string]interface{}{
			"meal_id": mealId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *mealService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("MealService", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *mealService) pushMealList(ctx context.Context, userId uuid.UUID) {
	if s.delivery == nil {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	list, err := s.listWith(ctx, uow, userId)
	if err != nil {
		s.logger.Warn("MealService", "Failed to load meal list for push", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return
	}
	s.delivery.SendMealPlan(userId, list.Meals)
}

func mealToResponse(m *entity.Meal) dto.MealResponse {
	return dto.MealResponse{
		Id:        m.Id,
		Name:      m.Name,
		Type:      string(m.Type),
		Calories:  m.Calories,
		Protein:   m.Protein,
		Carbs:     m.Carbs,
		Fat:       m.Fat,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
