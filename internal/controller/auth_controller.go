// FILE: internal/controller/auth_controller.go
package controller

import (
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) AuthController {
	return &authController{authService: authService}
}

func (c *authController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", c.Register)
	auth.Post("/verify-email", c.VerifyEmail)
	auth.Post("/login", c.Login)
}

// Register creates a pending account and emails a 6-digit OTP
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.RegisterResponse
// @Router /api/auth/register [post]
func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Registration successful, please verify your email", res))
}

// VerifyEmail activates an account with the emailed OTP code
// @Summary Verify email with OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Router /api/auth/verify-email [post]
func (c *authController) VerifyEmail(ctx *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	if err := c.authService.VerifyEmail(ctx.Context(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Email verified", nil))
}

// Login exchanges credentials for a JWT
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Router /api/auth/login [post]
func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}
