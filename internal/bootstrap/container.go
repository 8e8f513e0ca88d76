package bootstrap

import (
	"context"
	"log"

	"makementors-be/internal/config"
	"makementors-be/internal/controller"
	"makementors-be/internal/handler"
	"makementors-be/internal/pkg/logger"
	"makementors-be/internal/pkg/mailer"
	"makementors-be/internal/repository/implementation"
	"makementors-be/internal/repository/unitofwork"
	"makementors-be/internal/service"
	"makementors-be/internal/websocket"
	"makementors-be/pkg/llm/factory"
	"makementors-be/pkg/persona"
	"makementors-be/pkg/relay"

	pktNats "makementors-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	UserController    controller.IUserController
	MentorController  controller.IMentorController
	ChatController    controller.IChatController
	BillingController controller.IBillingController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.ChatCompletedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ChatCompletedTopic,
		uowFactory,
		llmProvider,
	)

	personaResolver := persona.NewResolver(uowFactory, sysLogger)
	chatRelay := relay.New(llmProvider, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory)
	mentorService := service.NewMentorService(uowFactory, personaResolver, sysLogger)
	chatService := service.NewChatService(uowFactory, personaResolver, chatRelay, publisherService, sysLogger)
	billingService := service.NewBillingService(uowFactory, natsPub, service.StripeConfig{
		SecretKey:      cfg.Stripe.SecretKey,
		WebhookSecret:  cfg.Stripe.WebhookSecret,
		MonthlyPriceId: cfg.Stripe.MonthlyPriceId,
		AnnualPriceId:  cfg.Stripe.AnnualPriceId,
		SuccessURL:     cfg.Stripe.SuccessURL,
		CancelURL:      cfg.Stripe.CancelURL,
		PortalReturn:   cfg.Stripe.PortalReturn,
	})

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		OAuthController:   controller.NewOAuthController(oauthService),
		UserController:    controller.NewUserController(userService),
		MentorController:  controller.NewMentorController(mentorService),
		ChatController:    controller.NewChatController(chatService),
		BillingController: controller.NewBillingController(billingService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
