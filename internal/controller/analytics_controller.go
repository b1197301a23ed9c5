// FILE: internal/controller/analytics_controller.go
package controller

import (
	"errors"
	"time"

	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type analyticsController struct {
	analyticsService      service.IAnalyticsService
	recommendationService service.IRecommendationService
}

func NewAnalyticsController(
	analyticsService service.IAnalyticsService,
	recommendationService service.IRecommendationService,
) AnalyticsController {
	return &analyticsController{
		analyticsService:      analyticsService,
		recommendationService: recommendationService,
	}
}

func (c *analyticsController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	api.Get("/analytics/nutrition", jwtMiddleware, c.Nutrition)
	api.Get("/recommendations", jwtMiddleware, c.Recommendations)
}

// Nutrition aggregates calories and macros per day over a range
// @Summary Nutrition analytics
// @Tags Analytics
// @Security BearerAuth
// @Param from query string false "RFC3339 start, default 7 days ago"
// @Param to query string false "RFC3339 end, default now"
// @Success 200 {object} dto.NutritionAnalyticsResponse
// @Router /api/analytics/nutrition [get]
func (c *analyticsController) Nutrition(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var from, to time.Time
	if raw := ctx.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid 'from' timestamp")
		}
	}
	if raw := ctx.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid 'to' timestamp")
		}
	}

	res, err := c.analyticsService.NutritionRange(ctx.Context(), userId, from, to)
	if err != nil {
		if errors.Is(err, service.ErrFeatureLocked) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analytics retrieved", res))
}

// Recommendations returns similar past meals for a free-text query
// @Summary Meal recommendations
// @Tags Analytics
// @Security BearerAuth
// @Param q query string true "query text"
// @Param limit query int false "max results, default 5"
// @Success 200 {object} dto.RecommendationResponse
// @Router /api/recommendations [get]
func (c *analyticsController) Recommendations(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing query")
	}
	limit := ctx.QueryInt("limit", 5)

	res, err := c.recommendationService.Similar(ctx.Context(), userId, query, limit)
	if err != nil {
		if errors.Is(err, service.ErrFeatureLocked) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recommendations retrieved", res))
}
