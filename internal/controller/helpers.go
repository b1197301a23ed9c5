// FILE: internal/controller/helpers.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// userIdFromLocals extracts the authenticated user id stashed by the JWT
// middleware. Routes behind the middleware always have it set.
func userIdFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID")
	}
	return userId, nil
}
