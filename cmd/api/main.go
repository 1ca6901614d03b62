package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/assignment-tracker/internal/config"
	"github.com/noah-isme/assignment-tracker/internal/database"
	"github.com/noah-isme/assignment-tracker/internal/handler"
	"github.com/noah-isme/assignment-tracker/internal/middleware"
	"github.com/noah-isme/assignment-tracker/internal/repository"
	"github.com/noah-isme/assignment-tracker/internal/router"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/storage"
	cloud "github.com/noah-isme/assignment-tracker/pkg/cloudinary"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.AppEnv == "development" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	lifetime, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(lifetime, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer closeStore()

	var publisher service.EventPublisher
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, notification events stay local")
		} else {
			defer conn.Drain()
			publisher = conn
		}
	}

	var uploader service.FileUploader
	if cfg.CloudinaryEnabled() {
		attachmentStore, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cloudinary client")
		}
		uploader = attachmentStore
	}

	validate := service.NewValidator()

	studentRepo := repository.NewStudentRepository(store, logger)
	assignmentRepo := repository.NewAssignmentRepository(store, logger)
	submissionRepo := repository.NewSubmissionRepository(store, logger)
	notificationRepo := repository.NewNotificationRepository(store, logger)
	sessionRepo := repository.NewSessionRepository(store, logger)

	attachments := service.NewAttachmentProcessor(validate, uploader, cfg.MaxAttachmentBytes, logger)
	notificationService := service.NewNotificationService(notificationRepo, publisher, cfg.NotificationSubject, cfg.NotificationPollInterval, logger)
	studentService := service.NewStudentService(studentRepo, assignmentRepo, submissionRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, studentRepo, attachments, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, studentRepo, notificationService, attachments, validate, logger)
	dashboardService := service.NewDashboardService(studentRepo, assignmentRepo, studentService, assignmentService, submissionService, notificationService, logger)
	authService := service.NewAuthService(sessionRepo, studentRepo, validate, cfg.JWTSecret, cfg.SessionTTL, cfg.AppName, logger)
	dataService, err := service.NewDataService(assignmentRepo, submissionRepo, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to compile import schema")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.MaxAttachmentBytes*2 + 1024*1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLog: cfg.AppEnv == "development"})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:            handler.NewAuthHandler(authService, logger),
		AdminStudentHandler:    handler.NewAdminStudentHandler(studentService, logger),
		AdminAssignmentHandler: handler.NewAdminAssignmentHandler(assignmentService, logger),
		AdminReviewHandler:     handler.NewAdminReviewHandler(submissionService, validate, logger),
		AdminDashboardHandler:  handler.NewAdminDashboardHandler(dashboardService, logger),
		AdminDataHandler:       handler.NewAdminDataHandler(dataService, logger),
		StudentHandler:         handler.NewStudentHandler(dashboardService, assignmentService, submissionService, logger),
		NotificationHandler:    handler.NewNotificationHandler(lifetime, notificationService, 30*time.Second, logger),
		JWTMiddleware:          middleware.JWTProtected(cfg.JWTSecret),
		LoginLimiter:           middleware.RateLimit("login", cfg.LoginRateLimit, time.Minute),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("store", cfg.StoreDriver).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Error().Err(err).Msg("server stopped listening")
			stop()
		}
	}()

	waitForShutdown(lifetime, app, logger)
}

// openStore selects the snapshot backend named by the configuration.
func openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisStore(client, cfg.StoreKeyPrefix), func() { _ = client.Close() }, nil
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.StoreDriver == config.StoreDriverPostgres {
			db, err = database.ConnectPostgres(cfg.DatabaseURL)
		} else {
			db, err = database.ConnectSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, noop, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to access sql handle: %w", err)
		}
		store, err := storage.NewSQLStore(db)
		if err != nil {
			_ = sqlDB.Close()
			return nil, noop, err
		}
		return store, func() { _ = sqlDB.Close() }, nil
	default:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return storage.NewMemoryStore(), noop, nil
	}
}

func waitForShutdown(ctx context.Context, app *fiber.App, logger zerolog.Logger) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
