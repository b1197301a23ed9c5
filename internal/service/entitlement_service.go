// FILE: internal/service/entitlement_service.go
// Resolves a user's subscription into their feature bundle. The read path
// never fails outward: any error degrades to the free tier so a storage
// hiccup cannot lock a paying user out of the app entirely.
package service

import (
	"context"
	"time"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/entitlement"

	"github.com/google/uuid"
)

type IEntitlementService interface {
	// GetSubscription returns the user's most recent subscription row, or
	// nil when they have never subscribed.
	GetSubscription(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error)

	// IsActive re-derives the active predicate against the wall clock at
	// call time. Two calls straddling the expiry boundary can disagree.
	IsActive(ctx context.Context, userId uuid.UUID) (bool, error)

	// ResolveBundle maps the user's subscription state to a feature bundle.
	// It never returns an error: failures log and fall back to free tier.
	ResolveBundle(ctx context.Context, userId uuid.UUID) *entitlement.Bundle
}

type entitlementService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewEntitlementService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IEntitlementService {
	return &entitlementService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

func (s *entitlementService) GetSubscription(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

// activeSubscription finds the row that actually grants access right now.
// A user can carry several rows at once (active term, abandoned pending
// checkouts, expired history); the newest row alone is not authoritative.
func (s *entitlementService) activeSubscription(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.UserSubscription, error) {
	return uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.OwnedBy{UserId: userId},
		specification.ByStatus{Status: entity.SubscriptionStatusActive},
		specification.NotExpiredAt{Now: s.now()},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (s *entitlementService) IsActive(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := s.activeSubscription(ctx, uow, userId)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}
	return sub.ActiveAt(s.now()), nil
}

func (s *entitlementService) ResolveBundle(ctx context.Context, userId uuid.UUID) *entitlement.Bundle {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := s.activeSubscription(ctx, uow, userId)
	if err != nil {
		s.logger.Warn("ENTITLEMENT", "Subscription lookup failed, falling back to free tier", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return entitlement.FreeBundle()
	}
	if sub == nil {
		return entitlement.FreeBundle()
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		s.logger.Warn("ENTITLEMENT", "Plan lookup failed, falling back to free tier", map[string]interface{}{
			"user_id": userId,
			"plan_id": sub.PlanId,
			"error":   err.Error(),
		})
		return entitlement.FreeBundle()
	}

	// plan == nil (unknown plan id) resolves through the same free path.
	return entitlement.Resolve(sub, plan, s.now())
}
