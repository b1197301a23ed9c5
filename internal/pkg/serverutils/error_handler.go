// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"nutriplan-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into the
// standard envelope. Domain errors that carry payloads (limit exceeded,
// incomplete profile) keep their structured data.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponseWithData(
				fiber.StatusTooManyRequests,
				err.Error(),
				dto.LimitExceededData{
					LimitType:        limitErr.LimitType,
					Limit:            limitErr.Limit,
					Used:             limitErr.Used,
					ShowModalPricing: true,
				},
			))
		}

		var profileErr *dto.MissingProfileFieldsError
		if errors.As(err, &profileErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponseWithData(
				fiber.StatusUnprocessableEntity,
				err.Error(),
				fiber.Map{"missing_fields": profileErr.Fields},
			))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
			fiber.StatusInternalServerError,
			"Internal server error",
		))
	}
}
