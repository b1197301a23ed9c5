// FILE: internal/server/server.go
package server

import (
	"log"

	"nutriplan-be/internal/bootstrap"
	"nutriplan-be/internal/config"
	"nutriplan-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")
	jwtMiddleware := serverutils.JwtMiddleware(cfg.App.JWTSecret)

	c.AuthController.RegisterRoutes(api, jwtMiddleware)
	c.OAuthController.RegisterRoutes(api, jwtMiddleware)
	c.UserController.RegisterRoutes(api, jwtMiddleware)

	c.PlanController.RegisterRoutes(api, jwtMiddleware)
	c.SubscriptionController.RegisterRoutes(api, jwtMiddleware)
	c.PaymentController.RegisterRoutes(api, jwtMiddleware)

	c.MealController.RegisterRoutes(api, jwtMiddleware)
	c.GenerationController.RegisterRoutes(api, jwtMiddleware)

	c.AchievementController.RegisterRoutes(api, jwtMiddleware)
	c.AnalyticsController.RegisterRoutes(api, jwtMiddleware)

	c.WebSocketHandler.RegisterRoutes(api)
}
