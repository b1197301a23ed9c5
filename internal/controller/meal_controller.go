// FILE: internal/controller/meal_controller.go
package controller

import (
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MealController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type mealController struct {
	mealService service.IMealService
}

func NewMealController(mealService service.IMealService) MealController {
	return &mealController{mealService: mealService}
}

func (c *mealController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	meals := api.Group("/meals", jwtMiddleware)
	meals.Get("", c.List)
	meals.Post("", c.Create)
	meals.Delete("", c.ClearAll)
	meals.Post("/replace-plan", c.ReplacePlan)
	meals.Get("/summary", c.GetSummary)
	meals.Get("/:id", c.Show)
	meals.Put("/:id", c.Update)
	meals.Delete("/:id", c.Delete)
}

// List returns all of the user's meals ordered by date
// @Summary List meals
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} dto.MealListResponse
// @Router /api/meals [get]
func (c *mealController) List(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.mealService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Meals retrieved", res))
}

// Create logs a single meal
// @Summary Create meal
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} dto.MealResponse
// @Router /api/meals [post]
func (c *mealController) Create(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateMealRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.mealService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Meal created", res))
}

// Show returns one meal by id
// @Summary Get meal
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} dto.MealResponse
// @Router /api/meals/{id} [get]
func (c *mealController) Show(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid meal ID")
	}

	res, err := c.mealService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Meal not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Meal retrieved", res))
}

// Update patches a meal's fields
// @Summary Update meal
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} dto.MealResponse
// @Router /api/meals/{id} [put]
func (c *mealController) Update(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid meal ID")
	}

	var req dto.UpdateMealRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.mealService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Meal not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Meal updated", res))
}

// Delete removes one meal
// @Summary Delete meal
// @Tags Meals
// @Security BearerAuth
// @Router /api/meals/{id} [delete]
func (c *mealController) Delete(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid meal ID")
	}

	if err := c.mealService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Meal deleted", nil))
}

// ClearAll wipes the user's meal set
// @Summary Clear all meals
// @Tags Meals
// @Security BearerAuth
// @Router /api/meals [delete]
func (c *mealController) ClearAll(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	if err := c.mealService.ClearAll(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Meals cleared", nil))
}

// ReplacePlan swaps the entire meal set atomically
// @Summary Replace meal plan
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} dto.MealListResponse
// @Router /api/meals/replace-plan [post]
func (c *mealController) ReplacePlan(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.ReplacePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.mealService.ReplacePlan(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan replaced", res))
}

// GetSummary returns the stored plan summary row
// @Summary Get plan summary
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} dto.MealPlanSummaryResponse
// @Router /api/meals/summary [get]
func (c *mealController) GetSummary(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.mealService.GetSummary(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "No plan summary yet")
	}
	return ctx.JSON(serverutils.SuccessResponse("Summary retrieved", res))
}
