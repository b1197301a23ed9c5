// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"nutriplan-be/internal/config"
	"nutriplan-be/internal/controller"
	"nutriplan-be/internal/handler"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/pkg/mailer"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/internal/service"
	"nutriplan-be/internal/websocket"
	"nutriplan-be/pkg/embedding"
	"nutriplan-be/pkg/llm/factory"

	pktNats "nutriplan-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.AuthController
	OAuthController        controller.OAuthController
	UserController         controller.UserController
	PlanController         controller.PlanController
	SubscriptionController controller.SubscriptionController
	MealController         controller.MealController
	GenerationController   controller.GenerationController
	PaymentController      controller.PaymentController
	AchievementController  controller.AchievementController
	AnalyticsController    controller.AnalyticsController

	// Background services main.go runs
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHandler *handler.WebSocketHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		fmt.Sprintf("%s <%s>", cfg.SMTP.SenderName, cfg.SMTP.Email),
		cfg.App.ClientURL,
	)

	// In-process bus for embedding jobs
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider per config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS event bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis for cross-instance websocket relay
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.App.MealEmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.MealEmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	// Domain services
	entitlementService := service.NewEntitlementService(uowFactory, sysLogger)
	usageService := service.NewUsageService(uowFactory, sysLogger)
	subscriptionService := service.NewSubscriptionService(entitlementService, usageService, sysLogger)
	planService := service.NewPlanService(uowFactory)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.App.JWTSecret, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, service.OAuthConfig{
		GoogleClientID:     cfg.OAuth.GoogleClientID,
		GoogleClientSecret: cfg.OAuth.GoogleClientSecret,
		GoogleRedirectURL:  cfg.OAuth.GoogleRedirectURL,
	}, cfg.App.JWTSecret, sysLogger)
	userService := service.NewUserService(uowFactory)

	mealService := service.NewMealService(uowFactory, publisherService, natsPub, wsHub, sysLogger)
	generationService := service.NewGenerationService(
		uowFactory,
		subscriptionService,
		mealService,
		usageService,
		llmProvider,
		natsPub,
		sysLogger,
	)

	paymentService := service.NewPaymentService(
		uowFactory,
		natsPub,
		emailService,
		cfg.Payment,
		cfg.App.Environment,
		cfg.App.ClientURL,
		sysLogger,
	)

	achievementService := service.NewAchievementService(uowFactory, natsSub, entitlementService, wsHub, sysLogger)
	if err := achievementService.Start(); err != nil {
		log.Printf("[WARN] Failed to start achievement worker: %v", err)
	}

	analyticsService := service.NewAnalyticsService(uowFactory, entitlementService)
	recommendationService := service.NewRecommendationService(uowFactory, embeddingProvider, entitlementService)

	wsHandler := handler.NewWebSocketHandler(wsHub, cfg.App.JWTSecret, wsLogger)

	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService, cfg.App.ClientURL),
		UserController:         controller.NewUserController(userService),
		PlanController:         controller.NewPlanController(planService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, usageService),
		MealController:         controller.NewMealController(mealService),
		GenerationController:   controller.NewGenerationController(generationService),
		PaymentController:      controller.NewPaymentController(paymentService, planService),
		AchievementController:  controller.NewAchievementController(achievementService),
		AnalyticsController:    controller.NewAnalyticsController(analyticsService, recommendationService),

		ConsumerService: consumerService,

		WebSocketHandler: wsHandler,
		WebSocketHub:     wsHub,
	}
}
