// FILE: internal/controller/oauth_controller.go
package controller

import (
	"fmt"

	"nutriplan-be/internal/pkg/serverutils"
	"nutriplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OAuthController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type oauthController struct {
	oauthService service.IOAuthService
	clientURL    string
}

func NewOAuthController(oauthService service.IOAuthService, clientURL string) OAuthController {
	return &oauthController{
		oauthService: oauthService,
		clientURL:    clientURL,
	}
}

func (c *oauthController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	oauth := api.Group("/oauth")
	oauth.Get("/:provider/login", c.Login)
	oauth.Get("/:provider/callback", c.Callback)
}

// Login redirects the browser to the provider's consent screen
// @Summary Start OAuth login
// @Tags Auth
// @Router /api/oauth/{provider}/login [get]
func (c *oauthController) Login(ctx *fiber.Ctx) error {
	url, err := c.oauthService.GetLoginURL(ctx.Params("provider"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.Redirect(url, fiber.StatusTemporaryRedirect)
}

// Callback finishes the OAuth flow and redirects to the client with a token
// @Summary OAuth callback
// @Tags Auth
// @Router /api/oauth/{provider}/callback [get]
func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing authorization code")
	}

	res, err := c.oauthService.HandleCallback(ctx.Context(), ctx.Params("provider"), code)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	redirect := fmt.Sprintf("%s/auth/callback?token=%s", c.clientURL, res.AccessToken)
	return ctx.Redirect(redirect, fiber.StatusTemporaryRedirect)
}
