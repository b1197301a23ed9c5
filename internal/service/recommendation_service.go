// FILE: internal/service/recommendation_service.go
package service

import (
	"context"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/embedding"
	"nutriplan-be/pkg/entitlement"

	"github.com/google/uuid"
)

type IRecommendationService interface {
	// Similar embeds the query text and returns the user's closest logged
	// meals by cosine distance.
	Similar(ctx context.Context, userId uuid.UUID, query string, limit int) (*dto.RecommendationResponse, error)
}

type recommendationService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	entitlements      IEntitlementService
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	entitlements IEntitlementService,
) IRecommendationService {
	return &recommendationService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		entitlements:      entitlements,
	}
}

func (s *recommendationService) Similar(ctx context.Context, userId uuid.UUID, query string, limit int) (*dto.RecommendationResponse, error) {
	bundle := s.entitlements.ResolveBundle(ctx, userId)
	if !bundle.Has(entitlement.FeatureAiRecommendations) {
		return nil, ErrFeatureLocked
	}

	if limit <= 0 || limit > 20 {
		limit = 5
	}

	res, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	matches, err := uow.MealEmbeddingRepository().SearchSimilar(ctx, userId, res.Embedding.Values, limit)
	if err != nil {
		return nil, err
	}

	out := dto.RecommendationResponse{
		Query: query,
		Meals: make([]dto.MealResponse, 0, len(matches)),
	}
	if len(matches) == 0 {
		return &out, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.MealId)
	}
	meals, err := uow.MealRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}

	// Preserve the distance ordering from the vector search
	byId := make(map[uuid.UUID]dto.MealResponse, len(meals))
	for _, m := range meals {
		byId[m.Id] = mealToResponse(m)
	}
	for _, id := range ids {
		if m, ok := byId[id]; ok {
			out.Meals = append(out.Meals, m)
		}
	}

	return &out, nil
}
