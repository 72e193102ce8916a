package bootstrap

import (
	"context"
	"log"

	"promptlycoach-be/internal/adapter/relay"
	"promptlycoach-be/internal/config"
	"promptlycoach-be/internal/controller"
	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/handler"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/pkg/mailer"
	"promptlycoach-be/internal/realtime"
	"promptlycoach-be/internal/repository/memory"
	"promptlycoach-be/internal/repository/unitofwork"
	"promptlycoach-be/internal/service"
	"promptlycoach-be/internal/websocket"
	"promptlycoach-be/pkg/events"
	"promptlycoach-be/pkg/llm/factory"
	pktNats "promptlycoach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	RelayController controller.IRelayController
	ChatController  controller.IChatController
	LeadController  controller.ILeadController

	// Widget websocket
	WidgetHandler *handler.WidgetHandler
	WebSocketHub  *websocket.Hub

	// Background workers, nil when not configured
	LeadNotifier *service.LeadNotifierService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	realtimeLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	c.Logger = sysLogger

	// 2. Realtime broker: Redis when configured so every instance sees every insert.
	broker := newBroker(cfg, realtimeLogger)
	c.closers = append(c.closers, func() { _ = broker.Close() })

	// 3. Lead events
	var leadEvents events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			leadEvents = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 4. Services
	sessionCache := memory.NewSessionCache(cfg.Relay.SessionCacheTTL)
	chatStore := service.NewChatStoreService(uowFactory, sessionCache, broker, sysLogger)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	relaySettings := func() service.RelaySettings {
		return service.RelaySettings{
			APIKey:        cfg.Keys.OpenAI,
			RequireAPIKey: factory.RequiresAPIKey(cfg.Ai.LLMProvider),
			Model:         cfg.Ai.LLMModel,
			Temperature:   cfg.Ai.Temperature,
			MaxTokens:     cfg.Ai.MaxTokens,
		}
	}
	relayService := service.NewRelayService(chatStore, llmProvider, relaySettings, sysLogger)
	leadService := service.NewLeadService(uowFactory, leadEvents, sysLogger)

	// 5. Relay client used by the widget coordinators
	var relayClient coordinator.Relay
	if cfg.Relay.FunctionURL != "" {
		relayClient = relay.NewHTTPClient(cfg.Relay.FunctionURL, cfg.Relay.APIKey)
		log.Printf("[INFO] Widget relay: remote (%s)", cfg.Relay.FunctionURL)
	} else {
		relayClient = relay.NewLocalInvoker(relayService)
		log.Printf("[INFO] Widget relay: in-process")
	}

	// 6. Lead notifier
	c.LeadNotifier = newLeadNotifier(cfg, sysLogger, c)

	// 7. Widget
	c.WebSocketHub = websocket.NewHub(realtimeLogger)
	c.WidgetHandler = handler.NewWidgetHandler(c.WebSocketHub, coordinator.Config{
		Store:        chatStore,
		Relay:        relayClient,
		Subscriber:   broker,
		Logger:       realtimeLogger,
		RelayTimeout: cfg.Relay.Timeout,
	}, realtimeLogger)

	// 8. Controllers
	c.RelayController = controller.NewRelayController(relayService, sysLogger)
	c.ChatController = controller.NewChatController(chatStore)
	c.LeadController = controller.NewLeadController(leadService, cfg.App.JwtSecret)

	return c
}

func newBroker(cfg *config.Config, log logger.ILogger) realtime.Broker {
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		err = rdb.Ping(context.Background()).Err()
		if err == nil {
			log.Info("Bootstrap", "Realtime broker: redis", nil)
			return realtime.NewRedisBroker(rdb, log)
		}
		log.Warn("Bootstrap", "Redis unreachable, falling back to in-process realtime broker", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	log.Info("Bootstrap", "Realtime broker: in-process", nil)
	return realtime.NewLocalBroker(pubSub, log)
}

func newLeadNotifier(cfg *config.Config, log logger.ILogger, c *Container) *service.LeadNotifierService {
	if cfg.App.NatsURL == "" || cfg.SMTP.Host == "" || cfg.SMTP.LeadsInbox == "" {
		log.Info("Bootstrap", "Lead notifier disabled (needs NATS_URL, SMTP_HOST and LEADS_INBOX_EMAIL)", nil)
		return nil
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Warn("Bootstrap", "Failed to connect to NATS Subscriber, lead notifier disabled", map[string]interface{}{"error": err.Error()})
		return nil
	}
	c.closers = append(c.closers, natsSub.Close)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)
	return service.NewLeadNotifierService(natsSub, emailService, cfg.SMTP.LeadsInbox, log)
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)

	if c.LeadNotifier != nil {
		if err := c.LeadNotifier.Start(ctx); err != nil {
			c.Logger.Error("Bootstrap", "Lead notifier failed to start", map[string]interface{}{"error": err})
		}
	}
}

// Close releases brokers and connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
