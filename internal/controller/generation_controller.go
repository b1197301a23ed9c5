// FILE: internal/controller/generation_controller.go
package controller

import (
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type GenerationController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) GenerationController {
	return &generationController{generationService: generationService}
}

func (c *generationController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	gen := api.Group("/generate", jwtMiddleware)
	gen.Post("/weekly-plan", c.WeeklyPlan)
	gen.Post("/meal", c.Meal)
}

// WeeklyPlan generates a 7-day plan, falling back to static dishes when the
// model is unavailable
// @Summary Generate weekly plan
// @Tags Generation
// @Security BearerAuth
// @Success 200 {object} dto.GenerateWeeklyPlanResponse
// @Failure 422 {object} serverutils.Response "profile incomplete"
// @Failure 429 {object} serverutils.Response "plan limit exceeded"
// @Router /api/generate/weekly-plan [post]
func (c *generationController) WeeklyPlan(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateWeeklyPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.generationService.GenerateWeeklyPlan(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Weekly plan generated", res))
}

// Meal generates one meal suggestion and logs it
// @Summary Generate single meal
// @Tags Generation
// @Security BearerAuth
// @Success 200 {object} dto.GenerateMealResponse
// @Failure 422 {object} serverutils.Response "profile incomplete"
// @Failure 429 {object} serverutils.Response "generation limit exceeded"
// @Router /api/generate/meal [post]
func (c *generationController) Meal(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateMealRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateMeal(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Meal generated", res))
}
