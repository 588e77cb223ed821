package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/psychologist_bot/internal/app"
	"github.com/Freeeeeet/psychologist_bot/internal/config"
	"github.com/Freeeeeet/psychologist_bot/internal/controller"
	"github.com/Freeeeeet/psychologist_bot/internal/repository"
	"github.com/Freeeeeet/psychologist_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting psychologist bot",
		zap.String("environment", cfg.Environment),
		zap.Int("admins", len(cfg.AdminIDs)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Репозитории
	slotRepo := repository.NewSlotRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	reminderRepo := repository.NewReminderRepository(pool)

	// Сервисы
	notifier := service.NewNotifier(botInstance, cfg.AdminIDs, logger)
	reminderService := service.NewReminderService(reminderRepo, notifier, logger)
	scheduleService := service.NewScheduleService(slotRepo, logger)
	bookingService := service.NewBookingService(appointmentRepo, notifier, reminderService, logger)

	// Фоновая рассылка напоминаний
	sweeper := app.NewSweeper(reminderService, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	botController := controller.NewBotController(botInstance, cfg, scheduleService, bookingService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}
