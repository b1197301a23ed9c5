// FILE: internal/controller/payment_controller.go
package controller

import (
	"errors"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type paymentController struct {
	paymentService service.IPaymentService
	planService    service.IPlanService
}

func NewPaymentController(paymentService service.IPaymentService, planService service.IPlanService) PaymentController {
	return &paymentController{
		paymentService: paymentService,
		planService:    planService,
	}
}

func (c *paymentController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	payment := api.Group("/payment")

	// Provider callback is unauthenticated; the signature check guards it
	payment.Post("/webhook", c.Webhook)

	payment.Get("/order-summary/:planId", jwtMiddleware, c.OrderSummary)
	payment.Post("/checkout", jwtMiddleware, c.Checkout)
	payment.Post("/simulate", jwtMiddleware, c.Simulate)
	payment.Get("/subscription", jwtMiddleware, c.GetSubscription)
	payment.Post("/subscription/cancel", jwtMiddleware, c.Cancel)
	payment.Post("/subscription/validate", jwtMiddleware, c.Validate)
}

// OrderSummary prices a plan including tax
// @Summary Get order summary
// @Tags Payment
// @Security BearerAuth
// @Success 200 {object} dto.OrderSummaryResponse
// @Router /api/payment/order-summary/{planId} [get]
func (c *paymentController) OrderSummary(ctx *fiber.Ctx) error {
	planId, err := uuid.Parse(ctx.Params("planId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan ID")
	}

	res, err := c.paymentService.GetOrderSummary(ctx.Context(), planId)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order summary retrieved", res))
}

// Checkout creates a pending subscription and a Snap payment session
// @Summary Checkout
// @Tags Payment
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutResponse
// @Router /api/payment/checkout [post]
func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.paymentService.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", res))
}

// Webhook handles Midtrans payment notifications
// @Summary Payment webhook
// @Tags Payment
// @Router /api/payment/webhook [post]
func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification body")
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	// New active subscriptions flip "most popular" math on the catalog
	c.planService.InvalidateCache()

	return ctx.JSON(serverutils.SuccessResponse("Notification processed", nil))
}

// Simulate activates a subscription without the provider (non-production only)
// @Summary Simulate payment
// @Tags Payment
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionResponse
// @Router /api/payment/simulate [post]
func (c *paymentController) Simulate(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SimulatePaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.paymentService.SimulatePayment(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrSimulationDisabled) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment simulated", res))
}

// GetSubscription returns the user's most recent subscription
// @Summary Get subscription
// @Tags Payment
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionResponse
// @Router /api/payment/subscription [get]
func (c *paymentController) GetSubscription(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.paymentService.GetSubscription(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "No subscription found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription retrieved", res))
}

// Cancel cancels the active subscription
// @Summary Cancel subscription
// @Tags Payment
// @Security BearerAuth
// @Router /api/payment/subscription/cancel [post]
func (c *paymentController) Cancel(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	if err := c.paymentService.Cancel(ctx.Context(), userId); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription canceled", nil))
}

// Validate lazily expires overdue subscriptions and reports validity
// @Summary Validate subscription
// @Tags Payment
// @Security BearerAuth
// @Success 200 {object} dto.ValidateSubscriptionResponse
// @Router /api/payment/subscription/validate [post]
func (c *paymentController) Validate(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.paymentService.Validate(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription validated", res))
}
