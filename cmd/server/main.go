package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/cache"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/translog/internal/adapter/queue"
	"github.com/seu-repo/translog/internal/adapter/storage/postgres"
	"github.com/seu-repo/translog/internal/adapter/vault"
	wsAdapter "github.com/seu-repo/translog/internal/adapter/websocket"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/observability/telemetry"
	"github.com/seu-repo/translog/internal/ports"
	"github.com/seu-repo/translog/internal/service/auth"
	"github.com/seu-repo/translog/internal/service/complaint"
	"github.com/seu-repo/translog/internal/service/email"
	"github.com/seu-repo/translog/internal/service/notification"
	"github.com/seu-repo/translog/internal/service/payment"
	"github.com/seu-repo/translog/internal/service/transfer"
	"github.com/seu-repo/translog/pkg/config"
)

const (
	serviceName    = "translog"
	serviceVersion = "v1.0.0"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	logger.Info("Starting Translog",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if configured, err := telemetry.NewLogger(cfg.Logging); err != nil {
		logger.Warn("Invalid logging config, keeping production defaults", zap.Error(err))
	} else {
		logger = configured
	}
	defer func() { _ = logger.Sync() }()

	// Vault overrides env-provided secrets when enabled
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dbURL, err := sm.GetDatabaseURL(); err == nil && dbURL != "" {
			cfg.Database.URL = dbURL
		}
		if secret, err := sm.GetJWTSecret(); err == nil && secret != "" {
			cfg.JWT.Secret = secret
		}
	}

	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	var messageQueue queue.MessageQueue
	switch cfg.Queue.Type {
	case "rabbitmq":
		messageQueue, err = queue.NewRabbitMQQueue(cfg.Queue.URL, logger)
	default:
		messageQueue, err = queue.NewNATSQueue(cfg.Queue.URL, logger)
	}
	if err != nil {
		logger.Fatal("Failed to connect to message queue",
			zap.String("type", cfg.Queue.Type), zap.Error(err))
	}
	defer messageQueue.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db, logger)
	workerRepo := postgres.NewWorkerRepository(db, logger)
	transferRepo := postgres.NewTransferRepository(db, logger)
	complaintRepo := postgres.NewComplaintRepository(db, logger)
	notificationRepo := postgres.NewNotificationRepository(db, logger)
	adRepo := postgres.NewAdRepository(db, logger)

	// Services
	authService := auth.NewService(userRepo, redisCache, cfg.JWT.Secret,
		cfg.JWT.AccessTokenDuration, cfg.JWT.RefreshTokenDuration, logger)
	policy := auth.NewPolicy(logger)
	transferService := transfer.NewService(transferRepo, workerRepo, messageQueue, logger)
	complaintService := complaint.NewService(complaintRepo, transferRepo, notificationRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	paymentService := payment.NewService(transferRepo, cfg.Payment.Stripe.SecretKey, logger)

	var emailProvider email.Provider
	if cfg.Email.Provider == "sendgrid" {
		emailProvider = email.NewSendGridProvider(cfg.Email.SendGrid.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		emailProvider = email.NewSMTPProvider(cfg.Email.SMTP.Host, cfg.Email.SMTP.Port,
			cfg.Email.SMTP.Username, cfg.Email.SMTP.Password, cfg.Email.FromEmail, cfg.Email.FromName)
	}
	emailService := email.NewService(emailProvider, cfg.Email.FromName, logger)

	// Realtime hub
	wsHub := wsAdapter.NewHub(logger)
	go wsHub.Run()

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	app.Use(middleware.CircuitBreaker(logger))

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Database not ready")
		}
		if err := redisCache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	if cfg.Prometheus.Enabled {
		metricsPath := cfg.Prometheus.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		app.Get(metricsPath, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	handlers.RegisterDocs(app)

	// The limiter keys by user id, so on protected routes it has to run after
	// AuthRequired. Public auth routes get the same limiter keyed by IP.
	var rateLimit fiber.Handler = func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimiting.Enabled {
		rateLimit = middleware.RateLimit(cfg.RateLimiting.Max, cfg.RateLimiting.Window)
	}

	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", rateLimit, authHandler.Login)
	v1.Post("/auth/register", rateLimit, authHandler.Register)
	v1.Post("/auth/refresh", rateLimit, authHandler.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService), rateLimit)
	protected.Get("/auth/me", authHandler.Me)

	// User routes
	userHandler := handlers.NewUserHandler(userRepo, logger)
	protected.Get("/users", middleware.RequirePermission(policy, "users", "read"), userHandler.List)
	protected.Patch("/users/me", userHandler.UpdateProfile)
	protected.Get("/users/:id", userHandler.Get)
	protected.Delete("/users/:id", middleware.RequirePermission(policy, "users", "delete"), userHandler.Delete)

	// Worker routes
	workerHandler := handlers.NewWorkerHandler(workerRepo, logger)
	protected.Get("/workers", middleware.RequirePermission(policy, "workers", "read"), workerHandler.List)
	protected.Post("/workers", middleware.RequirePermission(policy, "workers", "manage"), workerHandler.Create)
	protected.Get("/workers/:id", middleware.RequirePermission(policy, "workers", "read"), workerHandler.Get)
	protected.Patch("/workers/:id/availability", workerHandler.SetAvailability)
	protected.Delete("/workers/:id", middleware.RequirePermission(policy, "workers", "delete"), workerHandler.Delete)

	// Transfer routes
	transferHandler := handlers.NewTransferHandler(transferService, logger)
	protected.Get("/transfers", middleware.RequirePermission(policy, "transfers", "read"), transferHandler.List)
	protected.Post("/transfers", middleware.RequireRole(domain.UserRoleCustomer, domain.UserRoleAdmin), transferHandler.Create)
	protected.Get("/transfers/:id", middleware.RequirePermission(policy, "transfers", "read"), transferHandler.Get)
	protected.Patch("/transfers/:id", middleware.RequirePermission(policy, "transfers", "write"), transferHandler.Update)
	protected.Post("/transfers/:id/rate", middleware.RequirePermission(policy, "transfers", "write"), transferHandler.Rate)
	protected.Delete("/transfers/:id", middleware.RequirePermission(policy, "transfers", "delete"), transferHandler.Delete)

	// Payment routes
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	protected.Post("/transfers/:id/payment/intent", paymentHandler.CreateIntent)
	protected.Post("/transfers/:id/payment/confirm", paymentHandler.Confirm)
	protected.Post("/transfers/:id/payment/refund", middleware.RequireRole(domain.UserRoleAdmin), paymentHandler.Refund)

	// Complaint routes
	complaintHandler := handlers.NewComplaintHandler(complaintService, logger)
	protected.Get("/complaints", middleware.RequirePermission(policy, "complaints", "read"), complaintHandler.List)
	protected.Post("/complaints", middleware.RequirePermission(policy, "complaints", "write"), complaintHandler.Create)
	protected.Get("/complaints/:id", middleware.RequirePermission(policy, "complaints", "read"), complaintHandler.Get)
	protected.Post("/complaints/:id/responses", complaintHandler.Respond)
	protected.Patch("/complaints/:id/status", middleware.RequireRole(domain.UserRoleAdmin), complaintHandler.UpdateStatus)
	protected.Delete("/complaints/:id", middleware.RequireRole(domain.UserRoleAdmin), complaintHandler.Delete)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	protected.Get("/notifications", middleware.RequireRole(domain.UserRoleAdmin), notificationHandler.List)
	protected.Post("/notifications", middleware.RequireRole(domain.UserRoleAdmin), notificationHandler.Create)
	protected.Delete("/notifications/:id", middleware.RequireRole(domain.UserRoleAdmin), notificationHandler.Delete)
	protected.Get("/my-notifications", notificationHandler.MyNotifications)
	protected.Post("/my-notifications/read-all", notificationHandler.MarkAllRead)
	protected.Post("/my-notifications/:id/read", notificationHandler.MarkRead)

	// Ad routes
	adHandler := handlers.NewAdHandler(adRepo, logger)
	protected.Get("/ads", middleware.RequirePermission(policy, "ads", "read"), adHandler.List)
	protected.Post("/ads", middleware.RequirePermission(policy, "ads", "write"), adHandler.Create)
	protected.Get("/ads/:id", middleware.RequirePermission(policy, "ads", "read"), adHandler.Get)
	protected.Delete("/ads/:id", middleware.RequirePermission(policy, "ads", "delete"), adHandler.Delete)

	// WebSocket: token is validated during the upgrade, then the connection
	// joins per-transfer rooms via join/leave messages.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Query("token")
		if token == "" {
			return fiber.ErrUnauthorized
		}
		user, err := authService.ValidateToken(c.Context(), token)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("ws_user_id", user.ID)
		c.Locals("ws_admin", user.Role == domain.UserRoleAdmin)
		return c.Next()
	})
	app.Get("/ws/updates", websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("ws_user_id").(string)
		admin, _ := c.Locals("ws_admin").(bool)
		wsHub.AddClient(c, userID, admin)
	}))

	// Background workers
	go startBackgroundWorkers(messageQueue, wsHub, userRepo, transferRepo, emailService, logger)

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers wires the transfer status stream into the realtime
// hub and the email dispatcher.
func startBackgroundWorkers(mq queue.MessageQueue, hub *wsAdapter.Hub, userRepo ports.UserRepository, transferRepo ports.TransferRepository, emailService ports.EmailService, logger *zap.Logger) {
	logger.Info("Starting background workers")

	err := mq.Subscribe(transfer.SubjectTransferStatus, func(msg []byte) error {
		var ev transfer.StatusEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			logger.Error("bad status event payload", zap.Error(err))
			return nil
		}

		hub.BroadcastToRoom(ev.TransferID, msg)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := userRepo.FindByID(ctx, ev.UserID)
		if err != nil || user == nil {
			return nil
		}
		t, err := transferRepo.FindByID(ctx, ev.TransferID)
		if err != nil || t == nil {
			return nil
		}
		if err := emailService.SendTransferStatusChanged(ctx, user, t); err != nil {
			logger.Warn("status email failed",
				zap.String("transfer_id", ev.TransferID),
				zap.Error(err),
			)
		}
		return nil
	})
	if err != nil {
		logger.Error("subscribe to transfer status stream", zap.Error(err))
	}
}
