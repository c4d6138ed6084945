package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/app"
	"github.com/ryder-music/lessonbot/internal/config"
	"github.com/ryder-music/lessonbot/internal/controller"
	"github.com/ryder-music/lessonbot/internal/conversation"
	"github.com/ryder-music/lessonbot/internal/repository"
	"github.com/ryder-music/lessonbot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Хранилище расписания: Postgres при заданном DSN, иначе файл
	var repo repository.ScheduleRepository
	if cfg.DBDSN != "" {
		pool, poolErr := pgxpool.New(ctx, cfg.DBDSN)
		if poolErr != nil {
			logger.Fatal("Failed to create database pool", zap.Error(poolErr))
		}
		defer pool.Close()

		migrator, mErr := app.NewMigrator(pool)
		if mErr != nil {
			logger.Fatal("Failed to create migrator", zap.Error(mErr))
		}
		if mErr := migrator.Run(ctx); mErr != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(mErr))
		}
		migrator.Close()

		repo = repository.NewPostgresScheduleRepository(pool)
		logger.Info("Using Postgres schedule storage")
	} else {
		repo = repository.NewFileScheduleRepository(cfg.ScheduleFile)
		logger.Info("Using file schedule storage", zap.String("path", cfg.ScheduleFile))
	}

	store := service.NewScheduleStore(repo, logger)
	store.Load(ctx)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	sessions := conversation.NewSessionManager(cfg.SessionTTL, logger)
	notifier := controller.NewAdminNotifier(b, cfg.AdminID, logger)
	ctrl := controller.NewBotController(
		b, store, sessions, notifier,
		cfg.AdminID, cfg.AskLevel, cfg.AskInstrument,
		logger,
	)

	if err := ctrl.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register command menu", zap.Error(err))
	}

	janitor := app.NewJanitor(sessions, logger)
	janitor.Start(ctx)
	defer janitor.Stop()

	logger.Info("Starting lesson bot",
		zap.String("environment", cfg.Environment),
		zap.Int64("admin_id", cfg.AdminID))

	ctrl.Start(ctx)
}
