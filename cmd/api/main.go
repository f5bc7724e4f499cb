package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-pipeline/internal/api/http"
	"github.com/spec-kit/support-pipeline/internal/api/http/handlers"
	"github.com/spec-kit/support-pipeline/internal/config"
	"github.com/spec-kit/support-pipeline/internal/conversation"
	"github.com/spec-kit/support-pipeline/internal/delivery"
	"github.com/spec-kit/support-pipeline/internal/domain"
	"github.com/spec-kit/support-pipeline/internal/events"
	"github.com/spec-kit/support-pipeline/internal/formatter"
	"github.com/spec-kit/support-pipeline/internal/identity"
	"github.com/spec-kit/support-pipeline/internal/observability"
	"github.com/spec-kit/support-pipeline/internal/persistence"
	"github.com/spec-kit/support-pipeline/internal/processor"
	"github.com/spec-kit/support-pipeline/internal/repository"
	"github.com/spec-kit/support-pipeline/internal/responder"
	"github.com/spec-kit/support-pipeline/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	knowledgeRepo := repository.NewKnowledgeRepository(pool)
	metricRepo := repository.NewMetricRepository(pool)

	bus := events.NewBus(cfg, logger)
	if err := bus.Start(ctx); err != nil {
		logger.Fatal("failed to start event bus", zap.Error(err))
	}
	defer bus.Stop() //nolint:errcheck

	resolver := identity.NewResolver(customerRepo, logger)
	tracker := conversation.NewTracker(conversationRepo, logger)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		Resolver:    resolver,
		Tracker:     tracker,
		MessageRepo: messageRepo,
		TicketRepo:  ticketRepo,
		Bus:         bus,
		Logger:      logger,
	})
	supportService := service.NewSupportService(service.SupportDependencies{
		CustomerRepo:     customerRepo,
		ConversationRepo: conversationRepo,
		MessageRepo:      messageRepo,
		TicketRepo:       ticketRepo,
		MetricRepo:       metricRepo,
	})

	var proc *processor.Processor
	if cfg.Processor.Embedded {
		var generator responder.Generator
		if cfg.Agent.AnthropicAPIKey != "" {
			generator = responder.NewGenerativeGenerator(cfg.Agent, logger)
			logger.Info("response engine using generative strategy", zap.String("model", cfg.Agent.Model))
		} else {
			generator = responder.NewRuleGenerator()
			logger.Info("response engine using rule-based strategy")
		}
		engine := responder.NewEngine(responder.Dependencies{
			TicketRepo:    ticketRepo,
			MessageRepo:   messageRepo,
			KnowledgeRepo: knowledgeRepo,
			MetricRepo:    metricRepo,
			Bus:           bus,
			Generator:     generator,
			Logger:        logger,
			SearchLimit:   cfg.Agent.SearchLimit,
			HistoryLimit:  cfg.Agent.HistoryLimit,
		})

		guard := delivery.NewSendGuard(redis.Client)
		dispatcher := delivery.NewDispatcher(guard, logger)
		dispatcher.Register(domain.ChannelEmail, delivery.NewLogDeliverer(domain.ChannelEmail, logger))
		dispatcher.Register(domain.ChannelWhatsApp, delivery.NewLogDeliverer(domain.ChannelWhatsApp, logger))
		dispatcher.Register(domain.ChannelWebForm, delivery.NewLogDeliverer(domain.ChannelWebForm, logger))

		proc = processor.New(processor.Options{
			Bus:           bus,
			Resolver:      resolver,
			Tracker:       tracker,
			Responder:     engine,
			Messages:      messageRepo,
			Metrics:       metricRepo,
			Formatter:     formatter.New(cfg.Support.CompanyName, cfg.Support.HelpCenterURL),
			Delivery:      dispatcher,
			Logger:        logger,
			ShutdownGrace: cfg.Processor.ShutdownGrace(),
		})
		if err := proc.Start(ctx); err != nil {
			logger.Fatal("failed to start processor", zap.Error(err))
		}
		logger.Info("embedded processor running")
	}

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	supportHandler := handlers.NewSupportHandler(intakeService, supportService)
	customersHandler := handlers.NewCustomersHandler(supportService)
	metricsHandler := handlers.NewMetricsHandler(supportService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Support:   supportHandler,
		Customers: customersHandler,
		Metrics:   metricsHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	if proc != nil {
		if err := proc.Stop(); err != nil {
			logger.Warn("processor stop", zap.Error(err))
		}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
