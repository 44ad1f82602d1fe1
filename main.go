package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/sms-relay/environments"
	"github.com/onurcolak/sms-relay/handlers"
	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/consumer"
	"github.com/onurcolak/sms-relay/internal/middlewares"
	"github.com/onurcolak/sms-relay/internal/repository"
	"github.com/onurcolak/sms-relay/internal/service"
	"github.com/onurcolak/sms-relay/pkg/database"
	"github.com/onurcolak/sms-relay/pkg/logger"
	"github.com/onurcolak/sms-relay/pkg/messagebroker"
	"github.com/onurcolak/sms-relay/pkg/redis"
	"github.com/onurcolak/sms-relay/pkg/sessiontoken"
	"github.com/onurcolak/sms-relay/pkg/signalwire"
	"github.com/onurcolak/sms-relay/pkg/validator"
	"github.com/onurcolak/sms-relay/routes"

	_ "github.com/onurcolak/sms-relay/docs" // swagger docs
)

// @title SMS Relay API
// @version 1.0
// @description Provisioned SMS numbers with validated forwarding, message sharing between accounts and live updates
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
// @description Bearer session token returned by account creation

// @schemes http https
func main() {
	// Load config
	cfg := environments.Load()

	logger.Init(cfg.Log.Level)

	// Hard-fail if required secrets are missing
	if cfg.Auth.AdminAPIKey == "" {
		logger.Fatalf("ADMIN_API_KEY is required but not set")
	}
	if cfg.Auth.InboundAPIKey == "" {
		logger.Fatalf("INBOUND_API_KEY is required but not set")
	}
	if cfg.Auth.SessionSecret == "" {
		logger.Fatalf("SESSION_SECRET is required but not set")
	}
	if cfg.SignalWire.Space == "" || cfg.SignalWire.ProjectID == "" || cfg.SignalWire.APIToken == "" {
		logger.Warnf("SignalWire credentials are incomplete; sending and provisioning will fail")
	}

	logger.Infof("Starting SMS Relay...")

	// Init DB
	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		if err := database.SeedTestData(db); err != nil {
			logger.Warnf("Failed to seed test data: %v", err)
		}
	}

	// The telephone cache is optional
	var telephoneCache service.TelephoneCache
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis not available, telephone cache disabled: %v", err)
		redisClient = nil
	} else {
		telephoneCache = redisClient
	}

	smsClient := signalwire.NewClient(cfg.SignalWire)
	tokens := sessiontoken.NewIssuer(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	eventBus := bus.New()

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	telephoneRepo := repository.NewTelephoneRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	shareRepo := repository.NewShareRepository(db)
	validationRepo := repository.NewValidationRepository(db)

	// Services
	shareService := service.NewShareService(shareRepo, accountRepo, telephoneRepo, eventBus)
	validationService := service.NewValidationService(validationRepo, telephoneRepo, smsClient, eventBus)
	router := service.NewInboundRouter(
		telephoneRepo,
		accountRepo,
		messageRepo,
		validationService,
		smsClient,
		telephoneCache,
		eventBus,
	)
	accountService := service.NewAccountService(
		accountRepo,
		telephoneRepo,
		messageRepo,
		smsClient,
		tokens,
		shareService,
		eventBus,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// NATS is an optional second inbound source
	var (
		natsClient    *messagebroker.NATSClient
		inboundSource *consumer.Consumer
	)
	if cfg.NATS.Enabled {
		natsClient, err = messagebroker.NewNATSClient(cfg.NATS.URL, "sms-relay")
		if err != nil {
			logger.Warnf("NATS not available, consumer disabled: %v", err)
			natsClient = nil
		}
	}
	if natsClient != nil {
		inboundSource = consumer.NewConsumer(natsClient, router, cfg.NATS.Subject, cfg.NATS.QueueGroup)
	} else {
		inboundSource = consumer.NewConsumer(nil, router, cfg.NATS.Subject, cfg.NATS.QueueGroup)
	}

	if natsClient != nil && os.Getenv("AUTO_START_CONSUMER") != "false" {
		logger.Infof("Auto-starting consumer...")
		if err := inboundSource.Start(ctx); err != nil {
			logger.Warnf("Failed to auto-start consumer: %v", err)
		}
	}

	// Handlers
	var broker interface{ IsConnected() bool }
	if natsClient != nil {
		broker = natsClient
	}

	h := routes.Handlers{
		Health:     handlers.NewHealthHandler(db, redisClient, broker),
		Inbound:    handlers.NewInboundHandler(router),
		Account:    handlers.NewAccountHandler(accountService),
		Share:      handlers.NewShareHandler(shareService),
		Validation: handlers.NewValidationHandler(validationService, accountService),
		Session:    handlers.NewSessionHandler(eventBus, shareService, cfg.Session.EventBuffer, cfg.Server.AllowedOrigins),
		Consumer:   handlers.NewConsumerHandler(inboundSource, ctx),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middlewares.APIKeyHeader,
		},
	}))

	routes.RegisterRoutes(e, h, tokens, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Stop taking new inbound SMS before the server goes away
	if inboundSource.IsRunning() {
		logger.Infof("Stopping consumer...")
		if err := inboundSource.Stop(); err != nil {
			logger.Errorf("Error stopping consumer: %v", err)
		}
	}

	// Cancel context; live sessions and in-flight routing see it
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	if natsClient != nil {
		logger.Infof("Draining NATS connection...")
		natsClient.Close()
	}

	logger.Infof("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}
