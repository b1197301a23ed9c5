// FILE: internal/controller/achievement_controller.go
package controller

import (
	"errors"

	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AchievementController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type achievementController struct {
	achievementService service.IAchievementService
}

func NewAchievementController(achievementService service.IAchievementService) AchievementController {
	return &achievementController{achievementService: achievementService}
}

func (c *achievementController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	api.Get("/achievements", jwtMiddleware, c.List)
}

// List returns the catalog with the user's unlock state
// @Summary List achievements
// @Tags Achievements
// @Security BearerAuth
// @Success 200 {object} dto.AchievementListResponse
// @Router /api/achievements [get]
func (c *achievementController) List(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.achievementService.List(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrFeatureLocked) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Achievements retrieved", res))
}
