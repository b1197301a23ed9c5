// FILE: internal/controller/subscription_controller.go
package controller

import (
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SubscriptionController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
	usageService        service.IUsageService
}

func NewSubscriptionController(
	subscriptionService service.ISubscriptionService,
	usageService service.IUsageService,
) SubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
		usageService:        usageService,
	}
}

func (c *subscriptionController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	sub := api.Group("/subscription", jwtMiddleware)
	sub.Get("/status", c.GetStatus)
	sub.Get("/usage", c.GetUsage)
}

// GetStatus returns the composite plan/limits/usage view
// @Summary Get subscription status
// @Tags Subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubscriptionStatusResponse
// @Router /api/subscription/status [get]
func (c *subscriptionController) GetStatus(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	status, err := c.subscriptionService.GetStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription status retrieved", status))
}

// GetUsage returns the raw usage counters
// @Summary Get usage counters
// @Tags Subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UsageResponse
// @Router /api/subscription/usage [get]
func (c *subscriptionController) GetUsage(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	stats, err := c.usageService.LoadUsage(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage retrieved", dto.UsageResponse{
		MealPlanCount:    stats.MealPlanCount,
		TotalGenerations: stats.TotalGenerations,
		WeeklyPlansCount: stats.WeeklyPlansCount,
	}))
}
