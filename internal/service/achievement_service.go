// FILE: internal/service/achievement_service.go
package service

import (
	"context"
	"errors"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/entitlement"
	"nutriplan-be/pkg/events"
	pktNats "nutriplan-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrFeatureLocked = errors.New("feature not available on current plan")

// AchievementDelivery pushes unlock notifications to connected clients.
// Implemented by the WebSocket hub.
type AchievementDelivery interface {
	SendAchievement(userId uuid.UUID, notification dto.AchievementUnlockedNotification)
}

type IAchievementService interface {
	// Start subscribes to the event bus and evaluates unlock rules whenever
	// a counted event arrives.
	Start() error

	List(ctx context.Context, userId uuid.UUID) (*dto.AchievementListResponse, error)
}

type achievementService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	entitlements IEntitlementService
	delivery     AchievementDelivery
	logger       logger.ILogger
}

func NewAchievementService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	entitlements IEntitlementService,
	delivery AchievementDelivery,
	log logger.ILogger,
) IAchievementService {
	return &achievementService{
		uowFactory:   uowFactory,
		subscriber:   subscriber,
		entitlements: entitlements,
		delivery:     delivery,
		logger:       log,
	}
}

func (s *achievementService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("AchievementService", "No event subscriber, unlock evaluation disabled", nil)
		return nil
	}
	if err := s.subscriber.Subscribe("events.>", "achievement-worker", s.handleEvent); err != nil {
		s.logger.Error("AchievementService", "Failed to start achievement subscriber", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.logger.Info("AchievementService", "Achievement service started, listening to events.>", nil)
	return nil
}

func (s *achievementService) handleEvent(ctx context.Context, event events.Event) error {
	rawUserId, ok := event.Payload()["user_id"].(string)
	if !ok {
		return nil
	}
	userId, err := uuid.Parse(rawUserId)
	if err != nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.AchievementRepository().FindAllByEventType(ctx, event.EventType())
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	count, err := s.progressFor(ctx, uow, userId, event.EventType())
	if err != nil {
		return err
	}

	for _, a := range candidates {
		if count < a.Threshold {
			continue
		}
		unlocked, err := uow.AchievementRepository().Unlock(ctx, userId, a.Id)
		if err != nil {
			return err
		}
		if !unlocked {
			continue // already held
		}

		s.logger.Info("AchievementService", "Achievement unlocked", map[string]interface{}{
			"user_id": userId.String(),
			"key":     a.Key,
		})
		if s.delivery != nil {
			s.delivery.SendAchievement(userId, dto.AchievementUnlockedNotification{
				Key:  a.Key,
				Name: a.Name,
			})
		}
	}
	return nil
}

// progressFor maps an event type onto the counter that measures it.
func (s *achievementService) progressFor(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, eventType string) (int, error) {
	switch eventType {
	case events.TypeMealLogged:
		n, err := uow.MealRepository().Count(ctx, specification.OwnedBy{UserId: userId})
		return int(n), err
	case events.TypePlanGenerated, events.TypePlanReplaced:
		stats, err := uow.UsageRepository().Find(ctx, userId)
		if err != nil || stats == nil {
			return 0, err
		}
		return stats.WeeklyPlansCount, nil
	case events.TypeSubscriptionPaid, events.TypeUserRegistered:
		// One-shot events: any occurrence satisfies a threshold of 1.
		return 1, nil
	default:
		return 0, nil
	}
}

func (s *achievementService) List(ctx context.Context, userId uuid.UUID) (*dto.AchievementListResponse, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if !bundle.Has(entitlement.FeatureAchievements) {
		return nil, ErrFeatureLocked
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	all, err := uow.AchievementRepository().FindAll(ctx,
		specification.Filter("is_active", true),
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	unlocked, err := uow.AchievementRepository().FindUnlocked(ctx, userId)
	if err != nil {
		return nil, err
	}
	held := make(map[uuid.UUID]*dto.AchievementResponse, len(unlocked))

	res := dto.AchievementListResponse{
		Achievements: make([]dto.AchievementResponse, 0, len(all)),
	}
	for _, a := range all {
		res.Achievements = append(res.Achievements, dto.AchievementResponse{
			Id:          a.Id,
			Key:         a.Key,
			Name:        a.Name,
			Description: a.Description,
			Threshold:   a.Threshold,
		})
		held[a.Id] = &res.Achievements[len(res.Achievements)-1]
	}
	for _, ua := range unlocked {
		if item, ok := held[ua.AchievementId]; ok {
			unlockedAt := ua.UnlockedAt
			item.Unlocked = true
			item.UnlockedAt = &unlockedAt
			res.UnlockedNum++
		}
	}

	return &res, nil
}
