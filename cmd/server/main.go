package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SubhamSahu809/ProRental/internal/adapter/geocode"
	natsadapter "github.com/SubhamSahu809/ProRental/internal/adapter/messaging/nats"
	"github.com/SubhamSahu809/ProRental/internal/adapter/repository/cache"
	"github.com/SubhamSahu809/ProRental/internal/adapter/repository/mongodb"
	"github.com/SubhamSahu809/ProRental/internal/adapter/session"
	"github.com/SubhamSahu809/ProRental/internal/adapter/storage/s3"
	"github.com/SubhamSahu809/ProRental/internal/config"
	"github.com/SubhamSahu809/ProRental/internal/handler"
	"github.com/SubhamSahu809/ProRental/internal/mailer"
	"github.com/SubhamSahu809/ProRental/internal/middleware"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/SubhamSahu809/ProRental/internal/platform/metrics"
	"github.com/SubhamSahu809/ProRental/internal/router"
	"github.com/SubhamSahu809/ProRental/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo, err := mongodb.NewListingRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize listing repository", zap.Error(err))
	}
	reviewRepo := mongodb.NewReviewRepository(db, appLogger)
	userRepo, err := mongodb.NewUserRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize user repository", zap.Error(err))
	}

	sessionStore, err := session.NewRedisStore(cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	listingCache := cache.NewListingCache(sessionStore.Client())

	imageStorage, err := s3.NewStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	geocoder := geocode.NewMapboxGeocoder(cfg.MapboxEndpoint, cfg.MapboxToken, appLogger)

	publisher, err := natsadapter.NewPublisher(cfg.NATSURL)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	if !smtpMailer.Configured() {
		appLogger.Warn("SMTP is not configured, notification emails are disabled")
	}

	sessionTTL := time.Duration(cfg.SessionTTLHrs) * time.Hour

	listingUC := usecase.NewListingUsecase(listingRepo, reviewRepo, userRepo, imageStorage, geocoder, listingCache, publisher, smtpMailer, appLogger)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, listingRepo, publisher, appLogger)
	userUC := usecase.NewUserUsecase(userRepo, sessionStore, publisher, smtpMailer, cfg.SessionSecret, sessionTTL, appLogger)

	metricsManager := metrics.NewManager(cfg.ServiceName)
	go func() {
		if err := metrics.StartServer(cfg.MetricsPort, appLogger, metricsManager.Registry); err != nil {
			appLogger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	authenticator := middleware.NewAuthenticator(cfg.SessionSecret, sessionStore)

	mux := router.New(router.Deps{
		Listings: handler.NewListingHandler(listingUC, metricsManager, appLogger),
		Reviews:  handler.NewReviewHandler(reviewUC, metricsManager, appLogger),
		Users:    handler.NewUserHandler(userUC, metricsManager, appLogger),
		Auth:     authenticator,
		Metrics:  metricsManager,
		Logger:   appLogger,
		Origins:  cfg.Origins(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
