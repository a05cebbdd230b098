package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/employer-dashboard/internal/api"
	"github.com/honeynil/employer-dashboard/internal/config"
	"github.com/honeynil/employer-dashboard/internal/handler"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/auth"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/kafka"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/mailer"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/redis"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/storage"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/webhook"
	"github.com/honeynil/employer-dashboard/internal/observability"
	core "github.com/honeynil/employer-dashboard/internal/repository/postgres"
	service "github.com/honeynil/employer-dashboard/internal/services"
	_ "github.com/lib/pq"
)

const serviceName = "employer-dashboard"

func main() {
	cfg := config.Load()

	shutdownTracing := observability.Setup(serviceName, cfg)
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		slog.Error("failed to open Postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := core.Migrate(db); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	userRepo := core.NewPostgresUserRepository(db)
	employerRepo := core.NewPostgresEmployerRepository(db)
	walletRepo := core.NewPostgresWalletRepository(db)
	transactionRepo := core.NewPostgresTransactionRepository(db)
	vacancyRepo := core.NewPostgresVacancyRepository(db)
	mediaRepo := core.NewPostgresMediaRepository(db)
	catalogRepo := core.NewPostgresCatalogRepository(db)
	eventRepo := core.NewPostgresEventRepository(db)

	redisClient := redis.NewClient(cfg.RedisAddr)
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	objectStorage, err := storage.NewS3Storage(cfg)
	if err != nil {
		slog.Error("failed to configure object storage", "error", err)
		os.Exit(1)
	}

	notifier := webhook.NewNotifier(cfg.SyncWebhookURL, 5*time.Second)
	defer notifier.Wait()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	effects := service.NewEffects(producer, cfg.EventsTopic, notifier)

	walletSvc := service.NewWalletService(walletRepo, transactionRepo, catalogRepo, effects)
	authSvc := service.NewAuthService(userRepo, redisClient, tokens,
		mailer.NewAPIMailer(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom), effects,
		service.MagicLinkConfig{
			BaseURL:    cfg.MagicLinkBaseURL,
			TTL:        cfg.MagicLinkTTL,
			RateLimit:  cfg.MagicLinkRateLimit,
			RateWindow: cfg.MagicLinkRateWindow,
		})
	accountSvc := service.NewAccountService(userRepo, employerRepo, walletRepo, transactionRepo, mediaRepo,
		walletSvc, authSvc, effects, cfg.EmployerRoleID, cfg.WelcomeCredits)
	vacancySvc := service.NewVacancyService(vacancyRepo, catalogRepo, transactionRepo, walletSvc, redisClient, effects)
	mediaSvc := service.NewMediaService(mediaRepo, employerRepo, objectStorage, effects, cfg.MediaMaxBytes, cfg.GalleryLimit)
	catalogSvc := service.NewCatalogService(catalogRepo, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.EventsTopic, serviceName+"-event-log", eventRepo)
	defer consumer.Close()
	go consumer.Consume(ctx)

	h := handler.NewHandler(authSvc, accountSvc, walletSvc, vacancySvc, mediaSvc, catalogSvc, cfg.MediaMaxBytes)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.SetupRouter(h, tokens, redisClient),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	cancel()
	slog.Info("server stopped")
}
