package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/repair-quote-api/docs"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/database"
	"github.com/straye-as/repair-quote-api/internal/export"
	"github.com/straye-as/repair-quote-api/internal/http/handler"
	"github.com/straye-as/repair-quote-api/internal/http/middleware"
	"github.com/straye-as/repair-quote-api/internal/http/router"
	"github.com/straye-as/repair-quote-api/internal/jobs"
	"github.com/straye-as/repair-quote-api/internal/logger"
	"github.com/straye-as/repair-quote-api/internal/notify"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"github.com/straye-as/repair-quote-api/internal/service"
	"github.com/straye-as/repair-quote-api/internal/storage"
	"go.uber.org/zap"
)

// @title Repair Quote API
// @version 1.0
// @description Quote requests and repair estimates between vehicle owners and repair centers

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Deployed environments serve the docs from their own host
	if basicCfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	} else {
		docs.SwaggerInfo.Host = ""
	}

	// In staging/production secrets come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	imageStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Repositories
	requestRepo := repository.NewQuoteRequestRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	historyRepo := repository.NewStatusTransitionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, log)

	// Lifecycle event delivery
	channels := []notify.Channel{notify.NewInboxChannel(notificationService)}
	if cfg.Notifications.Lark.Enabled {
		channels = append(channels, notify.NewLarkChannel(&cfg.Notifications.Lark, log))
		log.Info("Lark notifications enabled", zap.String("receive_id_type", cfg.Notifications.Lark.ReceiveIDType))
	}
	dispatcher := notify.NewDispatcher(notify.OptionsFromConfig(&cfg.Notifications), log, channels...)
	dispatcher.Start()

	// Services
	locker := service.NewKeyedLocker(cfg.Workflow.LockTimeoutDuration())
	quoteRequestService := service.NewQuoteRequestService(requestRepo, estimateRepo, historyRepo, locker, dispatcher, db, log)
	estimateService := service.NewEstimateService(requestRepo, estimateRepo, historyRepo, locker, dispatcher, db, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	quoteRequestHandler := handler.NewQuoteRequestHandler(quoteRequestService, log)
	estimateHandler := handler.NewEstimateHandler(estimateService, quoteRequestService, export.NewComparisonExporter(log), log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	attachmentHandler := handler.NewAttachmentHandler(imageStorage, cfg.Storage.MaxUploadSizeMB, log)
	adminHandler := handler.NewAdminHandler(estimateService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		quoteRequestHandler,
		estimateHandler,
		notificationHandler,
		attachmentHandler,
		adminHandler,
	)

	// Background expiry of overdue estimates
	var scheduler *jobs.Scheduler
	if cfg.Workflow.SweepEnabled {
		scheduler = jobs.NewScheduler(log)
		if _, err := jobs.RegisterExpirySweepJob(
			scheduler,
			estimateService,
			log,
			cfg.Workflow.SweepCron,
			cfg.Workflow.SweepTimeoutDuration(),
			cfg.Workflow.SweepOnStartup,
		); err != nil {
			return fmt.Errorf("failed to register expiry sweep job: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started with expiry sweep job",
			zap.String("cron_expr", cfg.Workflow.SweepCron),
			zap.Duration("timeout", cfg.Workflow.SweepTimeoutDuration()),
		)
	} else {
		log.Info("Estimate expiry sweep disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// requests are drained; flush events they produced
		if err := dispatcher.Close(ctx); err != nil {
			log.Warn("Notification dispatcher did not drain", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
