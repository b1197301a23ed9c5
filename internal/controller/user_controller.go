// FILE: internal/controller/user_controller.go
package controller

import (
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) UserController {
	return &userController{userService: userService}
}

func (c *userController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	user := api.Group("/user", jwtMiddleware)
	user.Get("/me", c.Me)
	user.Get("/profile", c.GetProfile)
	user.Put("/profile", c.UpdateProfile)
	user.Get("/settings", c.GetSettings)
	user.Put("/settings", c.UpdateSettings)
}

// Me returns the authenticated user
// @Summary Current user
// @Tags User
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Router /api/user/me [get]
func (c *userController) Me(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetMe(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User retrieved", res))
}

// GetProfile returns the nutrition profile, 404 when never set
// @Summary Get nutrition profile
// @Tags User
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Router /api/user/profile [get]
func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not set")
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile retrieved", res))
}

// UpdateProfile merges the given fields into the profile
// @Summary Update nutrition profile
// @Tags User
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Router /api/user/profile [put]
func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

// GetSettings returns user preferences with defaults applied
// @Summary Get settings
// @Tags User
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Router /api/user/settings [get]
func (c *userController) GetSettings(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetSettings(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings retrieved", res))
}

// UpdateSettings merges the given preference fields
// @Summary Update settings
// @Tags User
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Router /api/user/settings [put]
func (c *userController) UpdateSettings(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateSettings(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings updated", res))
}
